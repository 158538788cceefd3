package models

// Status labels for purchasable sites.
const (
	StatusAvailable  = "AVAILABLE"
	StatusOutOfStock = "OUT OF STOCK"
)

// LocationQuantity - stock at one store location.
type LocationQuantity struct {
	Location string
	Quantity int
}

// ChangeRecord - a reportable availability change of one product.
// Status is set for purchasable sites, Locations for store stock sites.
type ChangeRecord struct {
	SKU       string
	TargetURL string
	Site      Site
	Status    string
	Locations []LocationQuantity
}

// HasStatus reports whether the record carries a status line rather than locations.
func (c ChangeRecord) HasStatus() bool {
	return c.Status != ""
}

// State - the tracker state stored in the database.
type State struct {
	Snapshots []Snapshot
	Alerted   map[string]bool
}
