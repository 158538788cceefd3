// Package differ decides whether a fresh availability snapshot differs from the last known one.
package differ

import (
	"github.com/Houeta/stock-flow/internal/models"
)

// Diff compares a new snapshot with the previous one for the same product and
// returns a change record when the difference is worth reporting, nil otherwise.
// A nil oldSnap means the product has never been observed.
func Diff(newSnap models.Snapshot, oldSnap *models.Snapshot) *models.ChangeRecord {
	if !Compatible(newSnap, oldSnap) {
		oldSnap = nil
	}

	var oldAvail models.Availability
	if oldSnap != nil {
		oldAvail = oldSnap.Availability
	}

	switch avail := newSnap.Availability.(type) {
	case models.Purchasable:
		previous, _ := oldAvail.(models.Purchasable) // never seen means unavailable
		if avail == previous {
			return nil
		}
		return Describe(newSnap)
	case models.StoreStock:
		previous, _ := oldAvail.(models.StoreStock)
		if !stockChanged(avail, previous) {
			return nil
		}
		return Describe(newSnap)
	default:
		return nil
	}
}

// Compatible reports whether oldSnap can be compared with newSnap. Snapshots
// with a different site or availability shape are never compared.
func Compatible(newSnap models.Snapshot, oldSnap *models.Snapshot) bool {
	if oldSnap == nil || oldSnap.Availability == nil || newSnap.Availability == nil {
		return true
	}
	if oldSnap.Site != newSnap.Site {
		return false
	}

	switch newSnap.Availability.(type) {
	case models.Purchasable:
		_, ok := oldSnap.Availability.(models.Purchasable)
		return ok
	case models.StoreStock:
		_, ok := oldSnap.Availability.(models.StoreStock)
		return ok
	default:
		return true
	}
}

// Describe renders the current availability of a snapshot as a change record.
// It returns nil for snapshots that carry no signal.
func Describe(snap models.Snapshot) *models.ChangeRecord {
	record := &models.ChangeRecord{
		SKU:       snap.SKU,
		TargetURL: snap.TargetURL,
		Site:      snap.Site,
	}

	switch avail := snap.Availability.(type) {
	case models.Purchasable:
		record.Status = models.StatusOutOfStock
		if avail {
			record.Status = models.StatusAvailable
		}
	case models.StoreStock:
		record.Locations = make([]models.LocationQuantity, 0, len(avail))
		for _, location := range avail.Locations() {
			if avail[location] <= 0 {
				continue
			}
			record.Locations = append(record.Locations, models.LocationQuantity{
				Location: location,
				Quantity: avail[location],
			})
		}
	default:
		return nil
	}

	return record
}

// stockChanged reports whether any location quantity differs. Missing locations count as zero.
func stockChanged(newStock, oldStock models.StoreStock) bool {
	for location, qty := range newStock {
		if oldStock[location] != qty {
			return true
		}
	}
	for location, qty := range oldStock {
		if newStock[location] != qty {
			return true
		}
	}

	return false
}
