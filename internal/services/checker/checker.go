package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Houeta/stock-flow/internal/config"
	"github.com/Houeta/stock-flow/internal/models"
	"github.com/Houeta/stock-flow/internal/notify"
	"github.com/Houeta/stock-flow/internal/repository"
	"github.com/Houeta/stock-flow/internal/services/differ"
	"github.com/Houeta/stock-flow/internal/services/tracker"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Observer reads the current availability of a product.
type Observer interface {
	Observe(ctx context.Context, ref models.ProductRef) (models.Snapshot, error)
}

// Notifier dispatches rendered messages. Implementations must not block on delivery.
type Notifier interface {
	Digest(ctx context.Context, subject, body string)
	Alert(ctx context.Context, body string)
}

// Report is the outcome of one processed batch.
type Report struct {
	Changes []models.ChangeRecord // Changes went into the digest, in catalog order.
	Alerts  []models.ChangeRecord // Alerts were sent as immediate in-stock alerts.
}

// Checker is an orchestrator that performs a full verification cycle.
type Checker struct {
	log      *slog.Logger
	observer Observer
	state    *tracker.State
	notifier Notifier
	catalog  *config.Catalog
	repo     repository.StateRepository
}

// Option configures a Checker.
type Option func(*Checker)

// WithRepository persists the tracker state after every batch.
func WithRepository(repo repository.StateRepository) Option {
	return func(c *Checker) { c.repo = repo }
}

// NewChecker creates a new Checker instance.
func NewChecker(
	log *slog.Logger,
	observer Observer,
	state *tracker.State,
	notifier Notifier,
	catalog *config.Catalog,
	opts ...Option,
) *Checker {
	c := &Checker{log: log, observer: observer, state: state, notifier: notifier, catalog: catalog}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RunBatch observes every product of the catalog and processes the results.
// A batch interrupted during observation is dropped without touching the state.
func (c *Checker) RunBatch(ctx context.Context) (*Report, error) {
	const opn = "checker.RunBatch"
	log := c.log.With("op", opn)

	log.InfoContext(ctx, "Running batch", "products", len(c.catalog.Products))

	snaps, err := c.Observe(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: batch interrupted: %w", opn, err)
	}

	report := c.Process(ctx, snaps)
	c.save(ctx)

	log.InfoContext(ctx, "End of batch", "changes", len(report.Changes), "alerts", len(report.Alerts))

	return report, nil
}

// Observe checks all catalog products. Each site gets its own concurrency and
// rate limits. Failed observations are replaced by no-signal snapshots.
// The result keeps the catalog order. An error means ctx was cancelled before
// every product was observed, and the snapshots must not be processed.
func (c *Checker) Observe(ctx context.Context) ([]models.Snapshot, error) {
	const opn = "checker.Observe"

	products := c.catalog.Products
	snaps := make([]models.Snapshot, len(products))

	bySite := make(map[models.Site][]int)
	for i, ref := range products {
		bySite[ref.Site] = append(bySite[ref.Site], i)
	}

	var sites errgroup.Group
	for site, indexes := range bySite {
		limits := c.catalog.Limits(site)
		limiter := rate.NewLimiter(rate.Inf, 1)
		if limits.RatePerSec > 0 {
			limiter = rate.NewLimiter(rate.Limit(limits.RatePerSec), 1)
		}

		sites.Go(func() error {
			var group errgroup.Group
			group.SetLimit(limits.Concurrency)

			for _, idx := range indexes {
				ref := products[idx]
				group.Go(func() error {
					snaps[idx] = c.observe(ctx, opn, limiter, ref)
					return ctx.Err()
				})
			}

			return group.Wait()
		})
	}
	if err := sites.Wait(); err != nil {
		return nil, fmt.Errorf("%s: observation interrupted: %w", opn, err)
	}

	return snaps, nil
}

func (c *Checker) observe(ctx context.Context, opn string, limiter *rate.Limiter, ref models.ProductRef) models.Snapshot {
	if err := limiter.Wait(ctx); err != nil {
		c.log.WarnContext(ctx, "Observation skipped", "op", opn, "sku", ref.SKU, "error", err)
		return models.NoSignalSnapshot(ref)
	}

	snap, err := c.observer.Observe(ctx, ref)
	if err != nil {
		c.log.ErrorContext(ctx, "Observation failed, assuming no stock", "op", opn, "sku", ref.SKU, "error", err)
		return models.NoSignalSnapshot(ref)
	}

	return snap
}

// Process diffs the snapshots against the last known state, sends alerts and at most
// one digest, then stores the snapshots. Both checks see the state from before the batch.
func (c *Checker) Process(ctx context.Context, snaps []models.Snapshot) *Report {
	const opn = "checker.Process"
	log := c.log.With("op", opn)

	report := &Report{}

	for _, snap := range snaps {
		if !snap.Site.Known() {
			log.WarnContext(ctx, "Unknown site, product is never notified", "sku", snap.SKU, "site", snap.Site)
			c.state.Remember(snap)
			continue
		}

		var previous *models.Snapshot
		if last, ok := c.state.Last(snap.SKU); ok {
			previous = &last
			if !differ.Compatible(snap, previous) {
				log.WarnContext(ctx, "Site changed for product, ignoring previous snapshot",
					"sku", snap.SKU, "old_site", last.Site, "new_site", snap.Site)
				previous = nil
			}
		}

		if change := differ.Diff(snap, previous); change != nil {
			report.Changes = append(report.Changes, *change)
		}

		if c.state.ShouldAlertInStock(snap.SKU, snap.InStock()) {
			if current := differ.Describe(snap); current != nil {
				report.Alerts = append(report.Alerts, *current)
				c.notifier.Alert(ctx, notify.FormatAlert(*current))
			}
		}

		c.state.Remember(snap)
	}

	if len(report.Changes) == 0 {
		log.InfoContext(ctx, "No stock changes detected.")
		return report
	}

	subject, body := notify.FormatDigest(report.Changes)
	c.notifier.Digest(ctx, subject, body)
	log.InfoContext(ctx, "Stock changes detected", "count", len(report.Changes))

	return report
}

// Restore loads the saved tracker state, if a repository is configured.
func (c *Checker) Restore(ctx context.Context) error {
	const opn = "checker.Restore"

	if c.repo == nil {
		return nil
	}

	saved, err := c.repo.GetState(ctx)
	if errors.Is(err, repository.ErrStateNotFound) {
		c.log.InfoContext(ctx, "No saved state, starting fresh", "op", opn)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: failed to get saved state: %w", opn, err)
	}

	c.state.Restore(*saved)
	c.log.InfoContext(ctx, "Restored saved state", "op", opn, "products", len(saved.Snapshots))

	return nil
}

func (c *Checker) save(ctx context.Context) {
	const opn = "checker.save"

	if c.repo == nil {
		return
	}

	state := c.state.Export()
	if err := c.repo.UpdateState(ctx, &state); err != nil {
		c.log.ErrorContext(ctx, "Failed to save state", "op", opn, "error", err)
		return
	}
	c.log.DebugContext(ctx, "Successfully updated state in repository", "op", opn)
}
