package controller

import (
	"errors"
	"net/http"

	"github.com/campusbridge/campusbridge/pkg/repository/document"
	"github.com/campusbridge/campusbridge/pkg/store"
)

// AppError is the single application error contract. HTTPStatus drives
// the response code; Message is what the client sees.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewValidationError creates a 400 error carrying the underlying
// validation message.
func NewValidationError(message string) *AppError {
	return &AppError{Code: "validation_error", Message: message, HTTPStatus: http.StatusBadRequest}
}

// NewUnauthorizedError creates a 401 error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: "unauthorized", Message: message, HTTPStatus: http.StatusUnauthorized}
}

// NewForbiddenError creates a 403 error.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: "forbidden", Message: message, HTTPStatus: http.StatusForbidden}
}

// NewNotFoundError creates a 404 error.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: "not_found", Message: message, HTTPStatus: http.StatusNotFound}
}

// NewInternalError creates a 500 error wrapping its cause. The cause
// is logged, never sent to the client.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Code: "internal_error", Message: message, HTTPStatus: http.StatusInternalServerError, Err: cause}
}

// MapError converts any error into a status code and the failure
// envelope. Storage sentinels map to their natural statuses; anything
// unrecognized becomes a generic 500.
func MapError(err error) (int, ErrorResponse) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		message := appErr.Message
		if status >= 500 || message == "" {
			message = "an unexpected error occurred"
		}
		return status, ErrorResponse{Success: false, Message: message}
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Success: false, Message: "resource not found"}
	case errors.Is(err, document.ErrInvalidFilter):
		return http.StatusBadRequest, ErrorResponse{Success: false, Message: err.Error()}
	case errors.Is(err, document.ErrMissingID):
		return http.StatusBadRequest, ErrorResponse{Success: false, Message: "missing identifier"}
	}

	return http.StatusInternalServerError, ErrorResponse{Success: false, Message: "an unexpected error occurred"}
}
