// Package notify renders availability changes and delivers them to email and chat channels.
package notify

import "context"

// DigestSink delivers aggregated digests.
type DigestSink interface {
	Name() string
	DeliverDigest(ctx context.Context, subject, body string) error
}

// AlertSink delivers immediate single-product alerts.
type AlertSink interface {
	Name() string
	DeliverAlert(ctx context.Context, body string) error
}
