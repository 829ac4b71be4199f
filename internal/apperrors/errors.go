package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found or is outside the caller's scope.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the acting principal may not perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrArtifact indicates a template or artifact storage failure.
var ErrArtifact = errors.New("artifact error")

// ErrNothingToInvoice indicates that no work records qualified for an invoice.
var ErrNothingToInvoice = errors.New("nothing to invoice")

// AppError carries an HTTP status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound for the given entity.
func NewNotFoundError(entity string) *AppError {
	return NewAppError(http.StatusNotFound, entity+" not found", ErrNotFound)
}

// NewConflictError wraps ErrDuplicate.
func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

// NewValidationFailedError wraps ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

// NewForbiddenError wraps ErrForbidden.
func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// StatusCode maps an error onto an HTTP status.
func StatusCode(err error) int {
	var appErr *AppError
	switch {
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrNothingToInvoice):
		return http.StatusUnprocessableEntity
	case errors.As(err, &appErr) && appErr.Code != 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}
