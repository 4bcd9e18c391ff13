package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content string
	Usage   Usage
	Err     error
}

// Text builds a MockResponse carrying plain text.
func Text(s string) MockResponse {
	return MockResponse{Content: s}
}

// MockProvider is a deterministic Provider. It returns canned responses in
// FIFO order and records all requests. When the queue is empty it consults
// Fallback, and without one it reports the provider as unavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// Fallback answers requests once the queue is drained.
	Fallback func(ctx context.Context, req Request) MockResponse
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.Fallback != nil:
		resp = m.Fallback(ctx, req)
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request, or a zero Request.
func (m *MockProvider) LastCall() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}
	}
	return m.Calls[len(m.Calls)-1]
}

// NewOfflineProvider returns a mock that answers every purpose with fixed,
// well-formed text. It lets the whole session run without a model, which is
// useful for demos and smoke tests.
func NewOfflineProvider() *MockProvider {
	m := NewMockProvider()
	m.Fallback = func(ctx context.Context, _ Request) MockResponse {
		switch PurposeFrom(ctx) {
		case PurposeQuiz:
			return Text("What is one main point the summary makes about this topic?")
		case PurposeGrading:
			return Text("Grade: C\nJustification: Offline mode cannot compare the answer against the summary.")
		default:
			return Text("The search results are insufficient to produce a compliant summary.")
		}
	}
	return m
}
