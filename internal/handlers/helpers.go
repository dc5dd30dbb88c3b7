package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barberpro/internal/domain"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/middleware"
)

func currentShopID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextBarbershopID).(uint)
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

// idParam reads a positive numeric path parameter, answering 400 when it
// is not one.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// respondStore answers a repository error: ErrNotFound as 404 with code,
// everything else through httperr.Respond.
func respondStore(c *gin.Context, err error, code, message string) {
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, code, message)
		return
	}
	httperr.Respond(c, httperr.ErrStorage(err))
}
