package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit means the backend answered 429. RetryAfter is zero when the
// backend gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrEmptyResponse means the backend answered without any text to use: no
// choices, no text block, or a prompt blocked before generation.
type ErrEmptyResponse struct {
	Backend string
	Reason  string
}

func (e *ErrEmptyResponse) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("empty %s response", e.Backend)
	}
	return fmt.Sprintf("empty %s response: %s", e.Backend, e.Reason)
}

// ErrProviderUnavailable covers transport failures, 5xx answers and a local
// model server that is not running.
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

// ErrRequestRejected means the backend refused the request outright with a
// 4xx other than 429, such as a bad key or an unknown model.
type ErrRequestRejected struct {
	Status int
	Err    error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("request rejected (HTTP %d): %v", e.Status, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// IsCanceled reports whether err comes from a cancelled or expired context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// statusError turns an HTTP status from any backend into the typed errors
// the retry middleware understands.
func statusError(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status >= 500:
		return &ErrProviderUnavailable{Err: err}
	case status >= 400:
		return &ErrRequestRejected{Status: status, Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// transportError classifies a failure that never produced an HTTP status.
func transportError(err error) error {
	if IsCanceled(err) {
		return err
	}
	return &ErrProviderUnavailable{Err: err}
}
