// Package tracker keeps the last known snapshot of every product and the
// one-shot "already alerted as in stock" flags.
package tracker

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/Houeta/stock-flow/internal/models"
)

// State is the notification state of one product catalog.
// It is mutated by the orchestrator between observation phases only.
type State struct {
	mu             sync.Mutex
	lastSnapshot   map[string]models.Snapshot
	alertedInStock map[string]bool
}

// New creates an empty State.
func New() *State {
	return &State{
		lastSnapshot:   make(map[string]models.Snapshot),
		alertedInStock: make(map[string]bool),
	}
}

// Reset forgets every snapshot and alert flag.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.lastSnapshot)
	clear(s.alertedInStock)
}

// Last returns the most recent snapshot of a product.
func (s *State) Last(sku string) (models.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.lastSnapshot[sku]
	return snap, ok
}

// Remember overwrites the last known snapshot of the product.
func (s *State) Remember(snap models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastSnapshot[snap.SKU] = snap
}

// ShouldAlertInStock reports whether an in-stock product deserves an immediate alert.
// It fires once per stock run: the flag is cleared as soon as the product is seen out of stock.
func (s *State) ShouldAlertInStock(sku string, currentlyInStock bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !currentlyInStock {
		delete(s.alertedInStock, sku)
		return false
	}
	if s.alertedInStock[sku] {
		return false
	}
	s.alertedInStock[sku] = true

	return true
}

// Export returns a copy of the state with snapshots ordered by SKU.
func (s *State) Export() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snaps := slices.SortedFunc(maps.Values(s.lastSnapshot), func(a, b models.Snapshot) int {
		return strings.Compare(a.SKU, b.SKU)
	})

	return models.State{
		Snapshots: snaps,
		Alerted:   maps.Clone(s.alertedInStock),
	}
}

// Restore replaces the current state with a previously exported one.
func (s *State) Restore(state models.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.lastSnapshot)
	clear(s.alertedInStock)
	for _, snap := range state.Snapshots {
		s.lastSnapshot[snap.SKU] = snap
	}
	for sku, alerted := range state.Alerted {
		if alerted {
			s.alertedInStock[sku] = true
		}
	}
}
