package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/healthaibot/healthbot/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *slog.Logger

	// bodies stores prompt and completion text, not just metadata.
	bodies bool
}

// LoggingOption adjusts a LoggingProvider.
type LoggingOption func(*LoggingProvider)

// RecordBodies stores request and response text alongside the metadata.
func RecordBodies(enabled bool) LoggingOption {
	return func(l *LoggingProvider) { l.bodies = enabled }
}

// WithLogging wraps a Provider with event logging. provider is the backend
// name recorded alongside the model. Only metadata is stored unless
// RecordBodies(true) is given.
func WithLogging(p Provider, provider string, repo store.EventRepo, logger *slog.Logger, opts ...LoggingOption) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	l := &LoggingProvider{inner: p, provider: provider, eventRepo: repo, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		SessionID:   store.SessionIDFrom(ctx),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
	}
	if l.bodies {
		data.RequestBody = serializeRequest(req)
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		if l.bodies {
			data.ResponseBody = resp.Content
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	l.logger.Debug("llm request",
		"provider", data.Provider,
		"model", data.Model,
		"purpose", purpose,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
		"error", data.ErrorMessage,
	)

	// Telemetry must never fail the request.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.logger.Warn("failed to record LLM request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders the request the way `healthbot llm view` shows it.
func serializeRequest(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[params] max_tokens=%d temperature=%.2f\n\n", req.MaxTokens, req.Temperature)
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	return b.String()
}
