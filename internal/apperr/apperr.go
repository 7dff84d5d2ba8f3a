// Package apperr defines the structured, user-facing error value shared by the
// validation pipeline and the service layer. An *Error carries everything the
// API boundary needs to answer a request: the status code, the HTTP status
// text label, and a contract-stable message.
package apperr

import (
	"fmt"
	"net/http"
)

// Error is a deliberately raised, client-visible error. It is distinct from
// unexpected failures: the boundary forwards StatusCode and Message verbatim,
// so both are part of the API contract.
type Error struct {
	StatusCode int    `json:"statusCode"`
	Label      string `json:"error"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Label, e.Message)
}

// New builds an Error for the given status code. The label is always the
// standard HTTP status text.
func New(statusCode int, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		Label:      http.StatusText(statusCode),
		Message:    message,
	}
}

// BadRequest builds a 400 Error with the given message.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// NotFound builds a 404 Error with the given message.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}
