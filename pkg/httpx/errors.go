package httpx

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the API error type. Every failure a handler can surface maps to
// exactly one of these, so a call either fully succeeds with a schema-valid
// body or fails with a single documented status.
type Error struct {
	// Status is the HTTP status code for this error.
	Status int `json:"-"`

	// Code is a short machine-readable error code.
	Code string `json:"error"`

	// Message is a human-readable description of the error.
	Message string `json:"error_description"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Predefined API errors.
var (
	// ErrBadRequest is returned when the request body fails schema
	// validation or is otherwise malformed.
	ErrBadRequest = &Error{
		Status:  http.StatusBadRequest,
		Code:    "bad_request",
		Message: "the request is malformed or failed validation",
	}

	// ErrUnauthorized is returned on a signin credential mismatch. Unknown
	// name and wrong password intentionally look identical.
	ErrUnauthorized = &Error{
		Status:  http.StatusUnauthorized,
		Code:    "invalid_credentials",
		Message: "invalid credentials",
	}

	// ErrForbidden is returned for a missing, malformed, unknown or expired
	// session credential. All four cases share one status so a caller cannot
	// tell which half of the pair was wrong.
	ErrForbidden = &Error{
		Status:  http.StatusForbidden,
		Code:    "forbidden",
		Message: "missing or invalid session credential",
	}

	// ErrNotFound is returned for unknown routes.
	ErrNotFound = &Error{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: "no such route",
	}

	// ErrConflict is returned when a signup name is already taken.
	ErrConflict = &Error{
		Status:  http.StatusConflict,
		Code:    "conflict",
		Message: "name is already taken",
	}

	// ErrServer is the fallback for anything not in the taxonomy.
	ErrServer = &Error{
		Status:  http.StatusInternalServerError,
		Code:    "server_error",
		Message: "internal server error",
	}
)

// BadRequestf returns a 400 error carrying validation detail.
func BadRequestf(format string, args ...any) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    "bad_request",
		Message: fmt.Sprintf(format, args...),
	}
}

// WriteError writes err as a JSON error response. Typed *Error values keep
// their status and code; anything else becomes a 500 without leaking detail.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = ErrServer
	}
	WriteJSON(w, apiErr.Status, apiErr)
}
