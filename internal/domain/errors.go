package domain

import (
	"fmt"
	"net/http"
)

// AppError is the only error shape that crosses the presentation boundary.
// Code doubles as the wire paymentStatus in error responses.
type AppError struct {
	Code     string
	Message  string
	HTTPCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func ErrPaymentNotFound(ref string) *AppError {
	return &AppError{
		Code:     "NOT_FOUND",
		Message:  fmt.Sprintf("Payment not found for session ID: %s", ref),
		HTTPCode: http.StatusNotFound,
	}
}

// ErrPaymentProcessing wraps a gateway failure with a user-safe message.
// The SDK detail stays in the logs, never in the response body.
func ErrPaymentProcessing(message string) *AppError {
	return &AppError{
		Code:     "FAILED",
		Message:  message,
		HTTPCode: http.StatusBadRequest,
	}
}

func ErrPaymentUnavailable(message string) *AppError {
	return &AppError{
		Code:     "FAILED",
		Message:  message,
		HTTPCode: http.StatusInternalServerError,
	}
}

func ErrInvalidRequest(detail string) *AppError {
	return &AppError{
		Code:     "INVALID_REQUEST",
		Message:  detail,
		HTTPCode: http.StatusBadRequest,
	}
}

func ErrValidation(detail string) *AppError {
	return &AppError{
		Code:     "VALIDATION_ERROR",
		Message:  detail,
		HTTPCode: http.StatusBadRequest,
	}
}

func ErrForbidden() *AppError {
	return &AppError{
		Code:     "ERROR",
		Message:  "caller is not authorized for this operation",
		HTTPCode: http.StatusForbidden,
	}
}

func ErrInternal() *AppError {
	return &AppError{
		Code:     "ERROR",
		Message:  "An unexpected error occurred. Please try again later.",
		HTTPCode: http.StatusInternalServerError,
	}
}

// ErrDuplicateTransaction is returned by the repository when an insert
// collides on the transaction id unique index.
var ErrDuplicateTransaction = &AppError{
	Code:     "INVALID_REQUEST",
	Message:  "a payment with this transaction ID already exists",
	HTTPCode: http.StatusBadRequest,
}
