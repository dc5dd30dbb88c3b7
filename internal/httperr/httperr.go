package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/barberpro/internal/logger"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond writes err using its kind. Storage failures are logged with the
// request logger and answered with a generic body.
func Respond(c *gin.Context, err error) {
	var be *BusinessError
	if !errors.As(err, &be) {
		be = &BusinessError{Kind: KindStorageFailure, Code: "storage_failure", Err: err}
	}

	if be.Kind == KindStorageFailure {
		logger.FromContext(c.Request.Context()).Error("request failed",
			"error", err,
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
		Internal(c, be.Code, "internal error")
		return
	}

	c.JSON(be.Kind.HTTPStatus(), HTTPError{
		Code:    be.Code,
		Message: be.Message,
		Details: be.Details,
	})
}

// BindError answers a failed ShouldBind*. Validation failures list the
// offending fields and the rule each one broke.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    "invalid_request",
			Message: "invalid input",
			Details: fields,
		})
		return
	}
	BadRequest(c, "invalid_request", "malformed request body")
}
