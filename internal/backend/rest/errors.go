package rest

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrFetch matches failures to complete a request: transport errors and
	// non-2xx responses.
	ErrFetch = errors.New("fetch failed")

	// ErrParse matches responses whose body is not the expected JSON.
	ErrParse = errors.New("parse failed")
)

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 512

// TransportError reports a request that never produced a response
// (connection refused, DNS failure, timeout).
type TransportError struct {
	Op     string
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrFetch }

// Timeout reports whether the request failed because a deadline passed.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// HTTPStatusError reports a response outside the 2xx range.
type HTTPStatusError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s %s: status %d", e.Op, e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s %s: status %d: %s", e.Op, e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *HTTPStatusError) Is(target error) bool { return target == ErrFetch }

// DecodeError reports a body that is not valid JSON or not shaped like a task
// list.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrParse }
