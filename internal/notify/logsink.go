package notify

import (
	"context"
	"log/slog"
)

// LogSink writes notifications to the log. It stands in when no channel is configured.
type LogSink struct {
	log *slog.Logger
}

// NewLogSink creates a LogSink.
func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

// Name implements DigestSink and AlertSink.
func (l *LogSink) Name() string {
	return "log"
}

// DeliverDigest implements DigestSink.
func (l *LogSink) DeliverDigest(ctx context.Context, subject, body string) error {
	l.log.InfoContext(ctx, "Digest", "subject", subject, "body", body)
	return nil
}

// DeliverAlert implements AlertSink.
func (l *LogSink) DeliverAlert(ctx context.Context, body string) error {
	l.log.InfoContext(ctx, "Alert", "body", body)
	return nil
}
