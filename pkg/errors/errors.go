package errors

import (
	"net/http"

	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

// AppError carries the HTTP status code and application status alongside the
// message, so transport handlers can destructure it without type switches at
// every call site.
type AppError struct {
	HTTPStatusCode int
	Status         string
	Message        string
}

func (e *AppError) Error() string {
	return e.Message
}

func New(httpStatusCode int, appStatus string, message string) error {
	return &AppError{
		HTTPStatusCode: httpStatusCode,
		Status:         appStatus,
		Message:        message,
	}
}

// Destruct returns the underlying AppError, or wraps an unknown error as an
// internal server error.
func Destruct(err error) *AppError {
	if ae, ok := err.(*AppError); ok {
		return ae
	}

	return &AppError{
		HTTPStatusCode: http.StatusInternalServerError,
		Status:         status.INTERNAL_SERVER_ERROR,
		Message:        err.Error(),
	}
}
