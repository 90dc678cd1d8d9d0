package model

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error is the single API error shape. Every error the service surfaces
// carries an HTTP status and a message; controllers render it verbatim as
// {"error": <message>} with the status code.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the error as a JSON response
func (e *Error) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// FieldError represents a validation failure on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError combines all collected field failures into a single
// 400 error. Messages are joined with ", " in the order the validators ran.
func NewValidationError(errs []FieldError) *Error {
	messages := make([]string, len(errs))
	for i, fe := range errs {
		messages[i] = fe.Message
	}
	return &Error{
		Status:  http.StatusBadRequest,
		Message: strings.Join(messages, ", "),
	}
}

// NewBadRequestError returns a 400 error for a business-rule violation
func NewBadRequestError(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NewUnauthorizedError returns a 401 error (token-level failures only)
func NewUnauthorizedError(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// NewNotFoundError returns a 404 error for a missing resource
func NewNotFoundError(resource string) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewRateLimitError returns a 429 error with a retry hint
func NewRateLimitError(retryAfterSeconds int) *Error {
	return &Error{
		Status:  http.StatusTooManyRequests,
		Message: fmt.Sprintf("rate limit exceeded, retry in %ds", retryAfterSeconds),
	}
}

// NewInternalError returns a 500 error for unexpected failures
func NewInternalError(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return &Error{Status: http.StatusInternalServerError, Message: message}
}
