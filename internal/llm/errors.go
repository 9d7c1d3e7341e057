package llm

import (
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit is a 429. RetryAfter is zero when the server gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means a reply arrived but held no usable completion.
type ErrInvalidResponse struct {
	Body string
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid completion response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers network failures and 5xx replies.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrRejected is a 4xx other than 429: bad key, unknown model, malformed
// request. Sending the same request again gets the same answer.
type ErrRejected struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ErrRejected) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request rejected with HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("request rejected with HTTP %d", e.StatusCode)
}

func (e *ErrRejected) Unwrap() error { return e.Err }

// fromHTTPStatus classifies an SDK error by the status the API returned.
// A zero status means the request never got an answer.
func fromHTTPStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status == http.StatusRequestTimeout:
		return &ErrProviderUnavailable{Err: err}
	case status >= 400 && status < 500:
		return &ErrRejected{StatusCode: status, Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}
