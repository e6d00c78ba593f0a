package httpclient

import (
	"errors"
	"fmt"
)

var (
	// ErrRelativeURL is returned when a target cannot be resolved to an
	// absolute URL: either it is relative and no base URL was configured, or
	// the configured base URL is itself relative.
	ErrRelativeURL = errors.New("relative URL without absolute base URL")

	// ErrInvalidParam is returned when a query parameter value is not a scalar.
	ErrInvalidParam = errors.New("invalid query parameter")
)

// RequestError reports an upstream response with a non-2xx status code.
// The response body is never decoded when this error is returned.
type RequestError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed with status code %d", e.URL, e.StatusCode)
}

// TransportError reports a request that could not complete: DNS, connection
// or an unparsable request target.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports a 2xx response whose body is not the expected JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusCode returns the status code carried by a *RequestError anywhere in
// err's chain, or 0 when there is none.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}
