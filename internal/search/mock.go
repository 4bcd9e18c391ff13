package search

import (
	"context"
	"sync"
)

// MockResponse is a canned answer for MockSearcher.
type MockResponse struct {
	Text string
	Err  error
}

// MockSearcher returns canned responses in FIFO order and records queries.
// Once the queue is drained it repeats the last response.
type MockSearcher struct {
	mu        sync.Mutex
	responses []MockResponse
	last      MockResponse
	Queries   []string
}

// NewMockSearcher creates a MockSearcher with the given responses.
func NewMockSearcher(responses ...MockResponse) *MockSearcher {
	return &MockSearcher{responses: responses}
}

func (m *MockSearcher) Search(_ context.Context, query string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Queries = append(m.Queries, query)
	if len(m.responses) > 0 {
		m.last = m.responses[0]
		m.responses = m.responses[1:]
	}
	return m.last.Text, m.last.Err
}

// CallCount returns the number of Search calls made.
func (m *MockSearcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Queries)
}
