package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/teamhub/server/internal/domain/auth"
	"github.com/teamhub/server/internal/domain/collaboration"
	"github.com/teamhub/server/internal/domain/project"
	"github.com/teamhub/server/internal/domain/user"
)

// Common error types.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal error")
)

// AppError represents an application error with HTTP status and error code.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrorResponse represents the JSON error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToResponse converts an AppError to ErrorResponse.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    e.Code,
			Message: e.Message,
		},
	}
}

// NotFound creates a not found error.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
		Err:        ErrNotFound,
	}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
		Err:        ErrUnauthorized,
	}
}

// BadRequest creates a bad request error.
func BadRequest(message string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        ErrBadRequest,
	}
}

// Internal creates an internal error. The cause is kept for logs only.
func Internal(err error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// classifiers are tried in order; each falls back to the collaboration table
// except auth.
var classifiers = []func(error) (collaboration.ErrorInfo, bool){
	auth.Classify,
	user.Classify,
	project.Classify,
}

// FromDomain maps err to an AppError by its domain category.
// Uncategorized errors become INTERNAL_ERROR.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, classify := range classifiers {
		info, ok := classify(err)
		if !ok {
			continue
		}
		message := info.Err.Error()
		if info.Kind == collaboration.KindPermission {
			// Keeps the attempted action.
			message = err.Error()
		}
		return &AppError{
			Code:       info.Code,
			Message:    message,
			StatusCode: StatusForKind(info.Kind),
			Err:        err,
		}
	}
	return Internal(err)
}

// StatusForKind returns the HTTP status for an error category.
func StatusForKind(kind collaboration.Kind) int {
	switch kind {
	case collaboration.KindNotFound:
		return http.StatusNotFound
	case collaboration.KindPermission:
		return http.StatusForbidden
	case collaboration.KindInvariant:
		return http.StatusUnprocessableEntity
	case collaboration.KindValidation:
		return http.StatusBadRequest
	case collaboration.KindConflict:
		return http.StatusConflict
	case collaboration.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// GetStatusCode returns the appropriate HTTP status code for an error.
func GetStatusCode(err error) int {
	return FromDomain(err).StatusCode
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || GetStatusCode(err) == http.StatusNotFound
}
