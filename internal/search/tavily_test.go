package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTavily(t *testing.T, handler http.HandlerFunc) *Tavily {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewTavily(TavilyConfig{
		APIKey:     "tvly-test",
		BaseURL:    server.URL,
		MaxResults: 3,
	})
}

func TestTavily_HappyPath(t *testing.T) {
	var got tavilyRequest
	var auth string
	tv := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"query": got.Query,
			"results": []map[string]any{
				{"title": "Hypertension", "url": "https://www.nih.gov/hbp", "content": "High blood pressure.", "score": 0.9},
			},
			"response_time": 0.42,
		})
	})

	text, err := tv.Search(context.Background(), BuildQuery("hypertension"))
	require.NoError(t, err)
	assert.Equal(t, "[1] Hypertension\nURL: https://www.nih.gov/hbp\nHigh blood pressure.", text)

	assert.Equal(t, "Bearer tvly-test", auth)
	assert.Equal(t, BuildQuery("hypertension"), got.Query)
	assert.Equal(t, AuthoritativeDomains, got.IncludeDomains)
	assert.Equal(t, 3, got.MaxResults)
	assert.Equal(t, "basic", got.SearchDepth)
}

func TestTavily_MissingKeySkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	tv := NewTavily(TavilyConfig{BaseURL: server.URL})
	_, err := tv.Search(context.Background(), "q")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, calls.Load())
}

func TestTavily_RejectsSchemaInvalidBody(t *testing.T) {
	bodies := map[string]string{
		"no results":       `{"query":"q"}`,
		"result no url":    `{"results":[{"title":"t","content":"c"}]}`,
		"results not list": `{"results":"none"}`,
		"not json":         `<html>oops</html>`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			tv := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			})
			_, err := tv.Search(context.Background(), "q")
			var inv *ErrInvalidResponse
			require.True(t, errors.As(err, &inv), "got %T (%v)", err, err)
			assert.Equal(t, body, string(inv.Body))
		})
	}
}

func TestTavily_StatusError(t *testing.T) {
	tv := NewTavily(TavilyConfig{APIKey: "bad"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":{"error":"Unauthorized: missing or invalid API key."}}`))
	}))
	defer server.Close()
	tv.client.SetBaseURL(server.URL)

	_, err := tv.Search(context.Background(), "q")
	var st *ErrStatus
	require.True(t, errors.As(err, &st), "got %T (%v)", err, err)
	assert.Equal(t, http.StatusUnauthorized, st.Code)
	assert.Contains(t, st.Body, "invalid API key")
}

func TestTavily_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	tv := NewTavily(TavilyConfig{APIKey: "tvly-test", BaseURL: server.URL, Retries: 1})
	tv.client.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(5 * time.Millisecond)

	text, err := tv.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestNewTavily_Defaults(t *testing.T) {
	tv := NewTavily(TavilyConfig{APIKey: "k", Retries: -1})
	assert.Equal(t, DefaultTavilyURL, tv.cfg.BaseURL)
	assert.Equal(t, 5, tv.cfg.MaxResults)
	assert.Equal(t, "basic", tv.cfg.SearchDepth)
	assert.Equal(t, 0, tv.cfg.Retries)
}
