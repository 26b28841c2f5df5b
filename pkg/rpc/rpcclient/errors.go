package rpcclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the status codes callers commonly branch on. Match with
// errors.Is against the error returned by Call.
var (
	ErrBadRequest   = errors.New("rpcclient: bad request")
	ErrUnauthorized = errors.New("rpcclient: unauthorized")
	ErrForbidden    = errors.New("rpcclient: forbidden")
	ErrNotFound     = errors.New("rpcclient: not found")
)

// HTTPError is returned for any non-200 response.
type HTTPError struct {
	Method string
	URL    string
	Status int

	// Code and Message carry the server's error body when it was parseable.
	Code    string
	Message string
}

func (e *HTTPError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("rpcclient: %s %s: %d %s: %s", e.Method, e.URL, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("rpcclient: %s %s: unexpected status %d", e.Method, e.URL, e.Status)
}

// Unwrap maps well-known statuses onto the package sentinels.
func (e *HTTPError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

func newHTTPError(req *http.Request, resp *http.Response) *HTTPError {
	httpErr := &HTTPError{
		Method: req.Method,
		URL:    req.URL.String(),
		Status: resp.StatusCode,
	}

	var body struct {
		Code    string `json:"error"`
		Message string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		httpErr.Code = body.Code
		httpErr.Message = body.Message
	}
	return httpErr
}
