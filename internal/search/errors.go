package search

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned before any network call when the Tavily key
// is not configured.
var ErrMissingAPIKey = errors.New("missing Tavily API key")

// MissingKeyHint is shown to the user when ErrMissingAPIKey is hit.
const MissingKeyHint = "Missing Tavily API key. Please export TAVILY_API_KEY before running the agent."

// ErrInvalidResponse means the backend answered 200 with a body that does not
// match the expected shape.
type ErrInvalidResponse struct {
	Body []byte
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid search response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrStatus is a non-200 answer from the backend.
type ErrStatus struct {
	Code int
	Body string
}

func (e *ErrStatus) Error() string {
	return fmt.Sprintf("search backend returned HTTP %d: %s", e.Code, e.Body)
}
