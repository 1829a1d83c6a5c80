package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

// HTTPError is returned when GitHub answers with a non-success status code,
// e.g. an unknown user (404) or an exhausted rate limit (403).
type HTTPError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: github API returned status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: github API returned status %d", e.Op, e.StatusCode)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// DecodeError is returned when a successful response body does not match the expected schema.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError is returned when no response was received at all
// (DNS failure, refused connection, timeout, cancellation).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// classifyError maps a go-github call failure onto the error taxonomy.
// go-github returns a nil response when the request never completed, a non-2xx
// response when CheckResponse rejected it, and a 2xx response when only the
// JSON decoding failed.
func classifyError(op string, resp *github.Response, err error) error {
	if resp == nil || resp.Response == nil {
		return &TransportError{Op: op, Err: err}
	}

	code := resp.StatusCode
	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		httpErr := &HTTPError{Op: op, StatusCode: code, Err: err}
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) {
			httpErr.Message = errResp.Message
		}
		var rateErr *github.RateLimitError
		if errors.As(err, &rateErr) {
			httpErr.Message = rateErr.Message
		}
		return httpErr
	}

	return &DecodeError{Op: op, Err: err}
}
