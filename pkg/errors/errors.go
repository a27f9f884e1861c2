// Package errors provides structured error types for FitAI.
//
// Handlers return these types so the HTTP boundary can map them to a status
// code and a client-safe message, and so logs carry a stable error code.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error identifier for categorization.
type ErrorCode string

// Common error codes used throughout FitAI.
const (
	// User errors
	CodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	CodeUserUnauthorized ErrorCode = "USER_UNAUTHORIZED"

	// Request errors
	CodeMalformedRequest ErrorCode = "MALFORMED_REQUEST"
	CodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"

	// Infrastructure errors
	CodeStorageError ErrorCode = "STORAGE_ERROR"
	CodePubSubError  ErrorCode = "PUBSUB_ERROR"
	CodeSecretError  ErrorCode = "SECRET_ERROR"

	// General errors
	CodeValidationError ErrorCode = "VALIDATION_ERROR"
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
)

// FitAIError is the base error type for all FitAI errors.
type FitAIError struct {
	Code      ErrorCode         // Unique error code for categorization
	Message   string            // Human-readable error message
	Cause     error             // Underlying error (if any)
	Retryable bool              // Whether the operation can be retried
	Metadata  map[string]string // Additional context
}

// Error implements the error interface.
func (e *FitAIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *FitAIError) Unwrap() error {
	return e.Cause
}

// Is matches any FitAIError carrying the same code, so wrapped copies of a
// sentinel still satisfy errors.Is(err, ErrX).
func (e *FitAIError) Is(target error) bool {
	t, ok := target.(*FitAIError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *FitAIError) WithCause(cause error) *FitAIError {
	return &FitAIError{
		Code:      e.Code,
		Message:   e.Message,
		Cause:     cause,
		Retryable: e.Retryable,
		Metadata:  e.Metadata,
	}
}

// WithMessage adds a custom message.
func (e *FitAIError) WithMessage(msg string) *FitAIError {
	return &FitAIError{
		Code:      e.Code,
		Message:   msg,
		Cause:     e.Cause,
		Retryable: e.Retryable,
		Metadata:  e.Metadata,
	}
}

// WithMetadata adds contextual metadata.
func (e *FitAIError) WithMetadata(key, value string) *FitAIError {
	meta := make(map[string]string)
	for k, v := range e.Metadata {
		meta[k] = v
	}
	meta[key] = value
	return &FitAIError{
		Code:      e.Code,
		Message:   e.Message,
		Cause:     e.Cause,
		Retryable: e.Retryable,
		Metadata:  meta,
	}
}

// Pre-defined sentinel errors for common cases.
// Use these with errors.Is() or wrap them with .WithCause().
var (
	ErrUserNotFound     = &FitAIError{Code: CodeUserNotFound, Message: "user not found", Retryable: false}
	ErrUserUnauthorized = &FitAIError{Code: CodeUserUnauthorized, Message: "unauthorized", Retryable: false}

	ErrMalformedRequest = &FitAIError{Code: CodeMalformedRequest, Message: "malformed request body", Retryable: false}
	ErrMethodNotAllowed = &FitAIError{Code: CodeMethodNotAllowed, Message: "method not allowed", Retryable: false}

	ErrStorageError = &FitAIError{Code: CodeStorageError, Message: "storage error", Retryable: true}
	ErrPubSubError  = &FitAIError{Code: CodePubSubError, Message: "pubsub error", Retryable: true}
	ErrSecretError  = &FitAIError{Code: CodeSecretError, Message: "secret access error", Retryable: true}

	ErrValidation = &FitAIError{Code: CodeValidationError, Message: "validation error", Retryable: false}
	ErrInternal   = &FitAIError{Code: CodeInternalError, Message: "internal error", Retryable: false}
)

// Wrap wraps an error with a FitAIError.
func Wrap(cause error, code ErrorCode, message string) *FitAIError {
	return &FitAIError{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: false,
	}
}

// WrapRetryable wraps an error with a retryable FitAIError.
func WrapRetryable(cause error, code ErrorCode, message string) *FitAIError {
	return &FitAIError{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: true,
	}
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var fErr *FitAIError
	if stderrors.As(err, &fErr) {
		return fErr.Retryable
	}
	return false
}

// GetCode extracts the error code from an error, if available.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var fErr *FitAIError
	if stderrors.As(err, &fErr) {
		return fErr.Code
	}
	return CodeInternalError
}

// HTTPStatus maps an error to the status code and client message returned by
// the HTTP functions. Server-side faults never leak their details.
func HTTPStatus(err error) (int, string) {
	var fErr *FitAIError
	if !stderrors.As(err, &fErr) {
		return http.StatusInternalServerError, "Server Error"
	}
	switch fErr.Code {
	case CodeUserUnauthorized:
		return http.StatusUnauthorized, "No token, authorization denied"
	case CodeUserNotFound:
		return http.StatusNotFound, "User not found"
	case CodeValidationError:
		return http.StatusBadRequest, fErr.Message
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed, "Method Not Allowed"
	default:
		return http.StatusInternalServerError, "Server Error"
	}
}
