package httperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindInvalidRequest Kind = "invalid_request"
	KindNotFound       Kind = "not_found"
	KindSlotConflict   Kind = "slot_conflict"
	KindStorageFailure Kind = "storage_failure"
)

// HTTPStatus maps a kind onto its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindSlotConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
	Details any
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Code, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Code)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func ErrInvalidRequest(code, message string) error {
	return &BusinessError{Kind: KindInvalidRequest, Code: code, Message: message}
}

func ErrNotFound(code, message string) error {
	return &BusinessError{Kind: KindNotFound, Code: code, Message: message}
}

func ErrSlotConflict(message string, details any) error {
	return &BusinessError{Kind: KindSlotConflict, Code: "slot_conflict", Message: message, Details: details}
}

// ErrStorage wraps an unexpected store error. A nil err stays nil.
func ErrStorage(err error) error {
	if err == nil {
		return nil
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return err
	}
	return &BusinessError{Kind: KindStorageFailure, Code: "storage_failure", Message: "internal error", Err: err}
}

func ErrBusiness(code string) error {
	return &BusinessError{Kind: KindInvalidRequest, Code: code, Message: code}
}

func IsBusiness(err error, code string) bool {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// KindOf reports the kind of err. Errors that are not a BusinessError are
// storage failures.
func KindOf(err error) Kind {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindStorageFailure
}
