package kayako

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is returned when the API answers with a status outside 2xx.
// Callers can use errors.As to inspect it:
//
//	var httpErr *kayako.HTTPError
//	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound { ... }
type HTTPError struct {
	StatusCode int
	Endpoint   string
	// Body is the start of the response body, kept for diagnostics.
	Body string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("kayako: %s returned HTTP %d", e.Endpoint, e.StatusCode)
}

// TransportError covers connection failures, timeouts, unreadable bodies and
// malformed XML.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("kayako: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrUnexpectedResponse is wrapped when a well-formed XML document does not
// have the shape an operation expects.
var ErrUnexpectedResponse = errors.New("kayako: unexpected response shape")

// IsNotFound reports whether err is an HTTPError with status 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an HTTPError.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
