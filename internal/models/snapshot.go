package models

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// ErrShapeMismatch is returned when availability data does not fit the site it was observed on.
var ErrShapeMismatch = errors.New("availability shape does not match site")

// Availability is the observed stock signal of one product. It is one of
// Purchasable, StoreStock or Unrecognized.
type Availability interface {
	kind() Kind
}

// Purchasable reports whether the product can be bought right now.
type Purchasable bool

// StoreStock maps a store location to the quantity on hand. Only positive quantities are present.
type StoreStock map[string]int

// Unrecognized is the availability of a product on a site we cannot read.
type Unrecognized struct{}

func (Purchasable) kind() Kind  { return KindPurchasable }
func (StoreStock) kind() Kind   { return KindStoreStock }
func (Unrecognized) kind() Kind { return KindUnknown }

// NewStoreStock copies quantities, dropping locations with zero or negative stock.
func NewStoreStock(quantities map[string]int) StoreStock {
	stock := make(StoreStock, len(quantities))
	for location, qty := range quantities {
		if qty > 0 {
			stock[location] = qty
		}
	}

	return stock
}

// Locations returns the location names in ascending order.
func (s StoreStock) Locations() []string {
	return slices.Sorted(maps.Keys(s))
}

// Snapshot is the result of one observation of a product.
type Snapshot struct {
	SKU          string
	TargetURL    string
	Site         Site
	Availability Availability
	ObservedAt   time.Time
}

// NewSnapshot builds a snapshot, checking that the availability shape matches the site.
func NewSnapshot(ref ProductRef, avail Availability) (Snapshot, error) {
	if avail == nil {
		avail = Unrecognized{}
	}
	if avail.kind() != ref.Site.Kind() {
		return Snapshot{}, fmt.Errorf("%w: site %q got %T", ErrShapeMismatch, ref.Site, avail)
	}
	if stock, ok := avail.(StoreStock); ok {
		avail = NewStoreStock(stock)
	}

	return Snapshot{
		SKU:          ref.SKU,
		TargetURL:    ref.TargetURL,
		Site:         ref.Site,
		Availability: avail,
		ObservedAt:   time.Now(),
	}, nil
}

// PurchasableSnapshot builds a snapshot for a bestbuy or newegg product.
func PurchasableSnapshot(ref ProductRef, available bool) Snapshot {
	return newUnchecked(ref, Purchasable(available))
}

// StoreStockSnapshot builds a snapshot for a product with per-location stock.
func StoreStockSnapshot(ref ProductRef, quantities map[string]int) Snapshot {
	return newUnchecked(ref, NewStoreStock(quantities))
}

// UnrecognizedSnapshot builds a snapshot that carries no signal.
func UnrecognizedSnapshot(ref ProductRef) Snapshot {
	return newUnchecked(ref, Unrecognized{})
}

// NoSignalSnapshot is substituted when an observation fails: it means "assume not in stock".
func NoSignalSnapshot(ref ProductRef) Snapshot {
	switch ref.Site.Kind() {
	case KindPurchasable:
		return PurchasableSnapshot(ref, false)
	case KindStoreStock:
		return StoreStockSnapshot(ref, nil)
	default:
		return UnrecognizedSnapshot(ref)
	}
}

func newUnchecked(ref ProductRef, avail Availability) Snapshot {
	return Snapshot{
		SKU:          ref.SKU,
		TargetURL:    ref.TargetURL,
		Site:         ref.Site,
		Availability: avail,
		ObservedAt:   time.Now(),
	}
}

// Ref returns the product reference the snapshot was taken for.
func (s Snapshot) Ref() ProductRef {
	return ProductRef{SKU: s.SKU, TargetURL: s.TargetURL, Site: s.Site}
}

// InStock reports whether the product can currently be bought anywhere.
func (s Snapshot) InStock() bool {
	switch avail := s.Availability.(type) {
	case Purchasable:
		return bool(avail)
	case StoreStock:
		return len(avail) > 0
	default:
		return false
	}
}
