// Package dto defines API request/response types and error handling.
//
// The package is the API contract layer:
//   - Request types use path/query/json struct tags for parameter binding
//   - Response types use string IDs and RFC3339 timestamps
//   - APIError carries an HTTP status code and a machine-readable ErrorCode
//
// Conversion from domain types lives in the handlers package (convert.go).
package dto

import (
	"fmt"
	"maps"
	"net/http"
)

// ErrorCode defines specific error types for the API.
type ErrorCode string

const (
	// ErrorCodeValidationFailed is returned when input data fails validation.
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	// ErrorCodeMissingField is returned when a required field is missing.
	ErrorCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrorCodeInvalidFormat is returned when a field has an invalid format.
	ErrorCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// ErrorCodeNotFound is returned when a resource is not found.
	ErrorCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrorCodePrototypeNotFound is returned when no prototype folder matches.
	ErrorCodePrototypeNotFound ErrorCode = "PROTOTYPE_NOT_FOUND"
	// ErrorCodeManifestNotFound is returned when a prototype folder has no
	// usable manifest.
	ErrorCodeManifestNotFound ErrorCode = "MANIFEST_NOT_FOUND"
	// ErrorCodeScreenshotNotFound is returned when a prototype has no
	// screenshot file.
	ErrorCodeScreenshotNotFound ErrorCode = "SCREENSHOT_NOT_FOUND"
	// ErrorCodeIdeaNotFound is returned when an idea is not found.
	ErrorCodeIdeaNotFound ErrorCode = "IDEA_NOT_FOUND"
	// ErrorCodeUnknownUser is returned when selecting a user outside the
	// current customer mode.
	ErrorCodeUnknownUser ErrorCode = "UNKNOWN_USER"

	// ErrorCodeInternal is returned when an unexpected server error occurs.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"

	// ErrorCodeRateLimitExceeded is returned when a client exceeds its rate
	// limit.
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrorCodePayloadTooLarge is returned when a request body is too large.
	ErrorCodePayloadTooLarge ErrorCode = "PAYLOAD_TOO_LARGE"
)

// ErrorDetails defines the structured error information in a response.
type ErrorDetails struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error   ErrorDetails   `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorWithStatus is an error that includes an HTTP status code and error code.
type ErrorWithStatus interface {
	Error() string
	StatusCode() int
	Code() ErrorCode
	Details() map[string]any
}

// APIError is a concrete error type with status code and optional details.
type APIError struct {
	statusCode int
	code       ErrorCode
	message    string
	details    map[string]any
	wrappedErr error
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, code ErrorCode, message string) *APIError {
	return &APIError{statusCode: statusCode, code: code, message: message}
}

// WithDetails adds details to the error.
func (e *APIError) WithDetails(details map[string]any) *APIError {
	if e.details == nil {
		e.details = make(map[string]any, len(details))
	}
	maps.Copy(e.details, details)
	return e
}

// WithDetail adds a single detail to the error.
func (e *APIError) WithDetail(key string, value any) *APIError {
	return e.WithDetails(map[string]any{key: value})
}

// Wrap wraps an underlying error.
func (e *APIError) Wrap(err error) *APIError {
	e.wrappedErr = err
	return e
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.wrappedErr != nil {
		return fmt.Sprintf("%s: %v", e.message, e.wrappedErr)
	}
	return e.message
}

// Message returns the message without the wrapped error, safe to show to
// clients.
func (e *APIError) Message() string {
	return e.message
}

// StatusCode returns the HTTP status code.
func (e *APIError) StatusCode() int {
	return e.statusCode
}

// Code returns the error code.
func (e *APIError) Code() ErrorCode {
	return e.code
}

// Details returns additional error details.
func (e *APIError) Details() map[string]any {
	return e.details
}

// Unwrap returns the wrapped error if any.
func (e *APIError) Unwrap() error {
	return e.wrappedErr
}

// NotFound creates a 404 Not Found error.
func NotFound(resource string) *APIError {
	return NewAPIError(http.StatusNotFound, ErrorCodeNotFound, resource+" not found")
}

// NotFoundWithCode creates a 404 error with a specific code.
func NotFoundWithCode(code ErrorCode, resource string) *APIError {
	return NewAPIError(http.StatusNotFound, code, resource+" not found")
}

// MissingField creates a 400 Bad Request error for a missing field.
func MissingField(fieldName string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeMissingField, "Missing required field: "+fieldName).
		WithDetail("field", fieldName)
}

// InvalidField creates a 400 Bad Request error for a malformed field.
func InvalidField(fieldName, reason string) *APIError {
	return NewAPIError(http.StatusBadRequest, ErrorCodeInvalidFormat, fieldName+": "+reason).
		WithDetail("field", fieldName)
}

// Internal returns a 500 Internal Server Error.
func Internal(message string) *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrorCodeInternal, message)
}

// InternalWithError creates a 500 error wrapping an underlying error.
func InternalWithError(message string, err error) *APIError {
	return Internal(message).Wrap(err)
}

// TooManyRequests creates a 429 error telling the client when to retry.
func TooManyRequests(retryAfterSeconds int) *APIError {
	return NewAPIError(http.StatusTooManyRequests, ErrorCodeRateLimitExceeded, "Rate limit exceeded").
		WithDetail("retry_after", retryAfterSeconds)
}

// PayloadTooLarge creates a 413 error for oversized request bodies.
func PayloadTooLarge(limit int64) *APIError {
	return NewAPIError(http.StatusRequestEntityTooLarge, ErrorCodePayloadTooLarge, "Request body too large").
		WithDetail("max_bytes", limit)
}
