package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultDeliveryTimeout = 30 * time.Second

// Dispatcher hands messages to sinks in the background. Deliveries are
// best-effort: a failed delivery is logged and dropped.
type Dispatcher struct {
	log     *slog.Logger
	digests []DigestSink
	alerts  []AlertSink
	timeout time.Duration

	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. A non-positive timeout falls back to 30s.
func NewDispatcher(log *slog.Logger, timeout time.Duration, digests []DigestSink, alerts []AlertSink) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}

	return &Dispatcher{log: log, digests: digests, alerts: alerts, timeout: timeout}
}

// Digest sends a digest to every digest sink without waiting for delivery.
func (d *Dispatcher) Digest(ctx context.Context, subject, body string) {
	for _, sink := range d.digests {
		d.deliver(ctx, sink.Name(), func(ctx context.Context) error {
			return sink.DeliverDigest(ctx, subject, body)
		})
	}
}

// Alert sends an alert to every alert sink without waiting for delivery.
func (d *Dispatcher) Alert(ctx context.Context, body string) {
	for _, sink := range d.alerts {
		d.deliver(ctx, sink.Name(), func(ctx context.Context) error {
			return sink.DeliverAlert(ctx, body)
		})
	}
}

// Wait blocks until all in-flight deliveries have finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, sink string, send func(ctx context.Context) error) {
	const opn = "notify.Dispatcher.deliver"

	// Deliveries outlive the batch that triggered them.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		if err := send(ctx); err != nil {
			d.log.ErrorContext(ctx, "Failed to deliver notification", "op", opn, "sink", sink, "error", err)
			return
		}
		d.log.InfoContext(ctx, "Notification delivered", "op", opn, "sink", sink)
	}()
}
