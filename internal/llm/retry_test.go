package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("connection refused")}}
}

func TestRetry_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantText  string
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "first attempt succeeds",
			responses: []MockResponse{Text("Asthma inflames the airways.")},
			wantText:  "Asthma inflames the airways.",
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			responses: []MockResponse{unavailable(), Text("Asthma inflames the airways.")},
			wantText:  "Asthma inflames the airways.",
			wantCalls: 2,
		},
		{
			name:      "all attempts fail",
			responses: []MockResponse{unavailable(), unavailable(), unavailable(), Text("late")},
			wantErr:   true,
			wantCalls: 3,
		},
		{
			name: "rate limit honors retry-after",
			responses: []MockResponse{
				{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
				Text("Grade: B\nJustification: Partly right."),
			},
			wantText:  "Grade: B\nJustification: Partly right.",
			wantCalls: 2,
		},
		{
			name: "rejected request is final",
			responses: []MockResponse{
				{Err: &ErrRequestRejected{Status: 401, Err: errors.New("bad key")}},
				Text("late"),
			},
			wantErr:   true,
			wantCalls: 1,
		},
		{
			name: "empty response retried once",
			responses: []MockResponse{
				{Err: &ErrEmptyResponse{Backend: "openai"}},
				{Err: &ErrEmptyResponse{Backend: "openai"}},
				Text("late"),
			},
			wantErr:   true,
			wantCalls: 2,
		},
		{
			name: "empty response then text",
			responses: []MockResponse{
				{Err: &ErrEmptyResponse{Backend: "gemini"}},
				Text("What causes asthma attacks?"),
			},
			wantText:  "What causes asthma attacks?",
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantText, resp.Text())
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), Text("late"))
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(Text("once"))
	_, err := WithRetry(mock, RetryConfig{}).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_BackoffCapped(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: time.Second, MaxWait: 4 * time.Second, Multiplier: 2}}
	for attempt := range 6 {
		d := r.backoff(attempt, errors.New("down"))
		assert.LessOrEqual(t, d, time.Duration(float64(4*time.Second)*1.2), "attempt %d", attempt)
		assert.Positive(t, d)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	assert.Equal(t, "mock", WithRetry(NewMockProvider(), retryConfig()).ModelID())
}
