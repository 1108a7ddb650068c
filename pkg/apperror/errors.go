package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Kind classifies errors into the families this service produces.
type Kind string

const (
	// KindValidation marks local pre-submission failures. They block the
	// backend call entirely; draft state is preserved for correction.
	KindValidation Kind = "validation"
	// KindNetwork marks transport failures or non-2xx backend responses.
	// Recovery is always user-initiated resubmission; there is no retry.
	KindNetwork Kind = "network"
	// KindNotFound marks missing resources reported by the backend.
	KindNotFound Kind = "not_found"
)

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound       = &AppError{Code: http.StatusNotFound, Message: "Resource not found", Kind: KindNotFound}
	ErrBadRequest     = &AppError{Code: http.StatusBadRequest, Message: "Bad request", Kind: KindValidation}
	ErrInternalServer = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error", Kind: KindNetwork}

	// Invoice submission validation errors, surfaced verbatim in the UI.
	ErrCustomerNameRequired = NewValidationError("customer name required")
	ErrNoItems              = NewValidationError("at least one item required")
	ErrInvalidLine          = NewValidationError("all items must be selected and have quantity >= 1")
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    KindNetwork,
	}
}

// NewValidationError creates a local validation error. No backend call is
// made when one of these is returned.
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Kind:    KindValidation,
	}
}

// NewNetworkError creates an error for a failed backend call, either a
// transport failure or a non-2xx response.
func NewNetworkError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: message,
		Kind:    KindNetwork,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
		Kind:    KindNotFound,
	}
}

// IsValidation reports whether err is a local validation error.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindValidation
}

// IsNetwork reports whether err is a backend/transport error.
func IsNetwork(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindNetwork
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Kind:    KindNetwork,
	}
}
