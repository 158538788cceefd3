package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Houeta/stock-flow/internal/models"
	"github.com/Houeta/stock-flow/internal/repository"
)

// GetState implements an interface method for retrieving state from the database.
func (r *Repository) GetState(ctx context.Context) (*models.State, error) {
	const opn = "repository.sqlite.GetState"

	// 1. Get per-location stock
	stock, err := r.getStockLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	// 2. Get all snapshots
	rows, err := r.db.QueryContext(
		ctx,
		"SELECT sku, target_url, site, available, observed_at, alerted FROM snapshots ORDER BY sku",
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get snapshots: %w", opn, err)
	}
	defer rows.Close()

	// 3. Scan every row to a Snapshot
	state := &models.State{Alerted: make(map[string]bool)}
	for rows.Next() {
		var (
			ref        models.ProductRef
			available  sql.NullBool
			observedAt int64
			alerted    bool
		)
		if err = rows.Scan(&ref.SKU, &ref.TargetURL, &ref.Site, &available, &observedAt, &alerted); err != nil {
			return nil, fmt.Errorf("%s: failed to scan snapshot: %w", opn, err)
		}

		snap := restoreSnapshot(ref, available, stock[ref.SKU])
		snap.ObservedAt = time.UnixMilli(observedAt)
		state.Snapshots = append(state.Snapshots, snap)
		if alerted {
			state.Alerted[ref.SKU] = true
		}
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	if len(state.Snapshots) == 0 {
		return nil, repository.ErrStateNotFound
	}

	return state, nil
}

func (r *Repository) getStockLocations(ctx context.Context) (map[string]map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT sku, location, quantity FROM stock_locations")
	if err != nil {
		return nil, fmt.Errorf("failed to get stock locations: %w", err)
	}
	defer rows.Close()

	stock := make(map[string]map[string]int)
	for rows.Next() {
		var (
			sku, location string
			quantity      int
		)
		if err = rows.Scan(&sku, &location, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan stock location: %w", err)
		}
		if stock[sku] == nil {
			stock[sku] = make(map[string]int)
		}
		stock[sku][location] = quantity
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("stock locations iteration error: %w", err)
	}

	return stock, nil
}

// restoreSnapshot rebuilds the availability from its stored columns according to the site.
func restoreSnapshot(ref models.ProductRef, available sql.NullBool, quantities map[string]int) models.Snapshot {
	switch ref.Site.Kind() {
	case models.KindPurchasable:
		return models.PurchasableSnapshot(ref, available.Valid && available.Bool)
	case models.KindStoreStock:
		return models.StoreStockSnapshot(ref, quantities)
	default:
		return models.UnrecognizedSnapshot(ref)
	}
}

// UpdateState atomically updates the state using a transaction.
func (r *Repository) UpdateState(ctx context.Context, state *models.State) error {
	const opn = "repository.sqlite.UpdateState"

	// 1. begin transaction
	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after a successful Commit only returns sql.ErrTxDone.

	// 2. Completely clear both tables to record the new current state.
	if _, err = tx.ExecContext(ctx, "DELETE FROM stock_locations"); err != nil {
		return fmt.Errorf("%s: failed to delete old stock locations: %w", opn, err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("%s: failed to delete old snapshots: %w", opn, err)
	}

	// 3. Preparing requests for the effective insertion of new rows.
	snapStmt, err := tx.PrepareContext(
		ctx,
		"INSERT INTO snapshots (sku, target_url, site, available, observed_at, alerted) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare snapshot statement: %w", opn, err)
	}
	defer snapStmt.Close()

	stockStmt, err := tx.PrepareContext(ctx, "INSERT INTO stock_locations (sku, location, quantity) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stock location statement: %w", opn, err)
	}
	defer stockStmt.Close()

	// 4. Insert each snapshot and its locations.
	for _, snap := range state.Snapshots {
		var available any
		if avail, ok := snap.Availability.(models.Purchasable); ok {
			available = bool(avail)
		}

		_, err = snapStmt.ExecContext(
			ctx, snap.SKU, snap.TargetURL, string(snap.Site), available, snap.ObservedAt.UnixMilli(), state.Alerted[snap.SKU],
		)
		if err != nil {
			return fmt.Errorf("%s: failed to insert snapshot with sku %s: %w", opn, snap.SKU, err)
		}

		stock, ok := snap.Availability.(models.StoreStock)
		if !ok {
			continue
		}
		for _, location := range stock.Locations() {
			if _, err = stockStmt.ExecContext(ctx, snap.SKU, location, stock[location]); err != nil {
				return fmt.Errorf("%s: failed to insert stock location %s for sku %s: %w", opn, location, snap.SKU, err)
			}
		}
	}

	// 5. If all operations went through without errors - confirm the transaction.
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}
