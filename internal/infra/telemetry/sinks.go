package telemetry

import (
	"context"
	"log/slog"

	domain "github.com/bryanwahyu/videomaster/internal/domain/telemetry"
)

// LogSink writes every event as one structured log line.
type LogSink struct {
	Logger *slog.Logger
}

func (l LogSink) Write(ctx context.Context, events []domain.Event) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, e := range events {
		attrs := []any{"event", e.Name, "at", e.At}
		if e.SessionID != "" {
			attrs = append(attrs, "session", e.SessionID)
		}
		for k, v := range e.Props {
			attrs = append(attrs, k, v)
		}
		logger.InfoContext(ctx, "telemetry", attrs...)
	}
	return nil
}

func (LogSink) Close() error { return nil }

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Write(context.Context, []domain.Event) error { return nil }
func (NopSink) Close() error                                { return nil }
