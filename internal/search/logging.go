package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/healthaibot/healthbot/internal/store"
)

// LoggingSearcher records every search as a telemetry event.
type LoggingSearcher struct {
	inner     Searcher
	backend   string
	eventRepo store.EventRepo
	logger    *slog.Logger
}

// WithLogging wraps s with event logging under the given backend name.
func WithLogging(s Searcher, backend string, repo store.EventRepo, logger *slog.Logger) Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingSearcher{inner: s, backend: backend, eventRepo: repo, logger: logger}
}

func (l *LoggingSearcher) Search(ctx context.Context, query string) (string, error) {
	start := time.Now()
	text, err := l.inner.Search(ctx, query)

	data := store.SearchEventData{
		SessionID:   store.SessionIDFrom(ctx),
		Backend:     l.backend,
		Query:       query,
		ResultCount: countResults(text),
		ResultChars: len(text),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("search failed", "backend", l.backend, "query", query, "error", err)
	} else {
		l.logger.Debug("search", "backend", l.backend, "query", query,
			"results", data.ResultCount, "latency_ms", data.LatencyMs)
	}

	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendSearchRequest(ctx, data); logErr != nil {
			l.logger.Warn("failed to record search event", "error", logErr)
		}
	}
	return text, err
}
