package models

import "strings"

// Site identifies the retailer a product page belongs to.
type Site string

// Known retailers. Any other value is kept as-is and treated as unknown.
const (
	SiteBestBuy         Site = "bestbuy"
	SiteCanadaComputers Site = "canadacomputers"
	SiteNewegg          Site = "newegg"
)

// Kind describes the shape of the availability data a site produces.
type Kind int

const (
	// KindUnknown sites carry no comparable signal.
	KindUnknown Kind = iota
	// KindPurchasable sites report a single "can buy now" flag.
	KindPurchasable
	// KindStoreStock sites report quantities per store location.
	KindStoreStock
)

// ParseSite normalizes a raw site name. Unrecognized names are returned verbatim (trimmed, lowercased).
func ParseSite(raw string) Site {
	return Site(strings.ToLower(strings.TrimSpace(raw)))
}

// Kind returns the availability shape of the site.
func (s Site) Kind() Kind {
	switch s {
	case SiteBestBuy, SiteNewegg:
		return KindPurchasable
	case SiteCanadaComputers:
		return KindStoreStock
	default:
		return KindUnknown
	}
}

// Known reports whether the site is one of the supported retailers.
func (s Site) Known() bool {
	return s.Kind() != KindUnknown
}

// ProductRef is a structure for storing one monitored product from the catalog.
type ProductRef struct {
	SKU       string
	TargetURL string
	Site      Site
}
