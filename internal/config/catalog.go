package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/Houeta/stock-flow/internal/models"
	"github.com/spf13/viper"
)

// DefaultConcurrency is the number of parallel page checks per site.
const DefaultConcurrency = 3

var (
	ErrEmptySKU     = errors.New("catalog product has an empty sku")
	ErrDuplicateSKU = errors.New("catalog product sku is not unique")
	ErrEmptyURL     = errors.New("catalog product has an empty url")
	ErrInvalidURL   = errors.New("catalog product url is not an absolute http(s) url")
)

// SiteLimits bounds how hard one retailer is polled.
type SiteLimits struct {
	Concurrency int     `mapstructure:"concurrency"`
	RatePerSec  float64 `mapstructure:"rate_per_sec"` // RatePerSec of zero means no rate limit.
}

// Catalog is the list of products to monitor, in check order.
type Catalog struct {
	Products []models.ProductRef
	Sites    map[models.Site]SiteLimits
}

// catalogFile is the on-disk layout. Products may name their page "url" or "targetURL".
type catalogFile struct {
	Products []struct {
		SKU       string `mapstructure:"sku"`
		URL       string `mapstructure:"url"`
		TargetURL string `mapstructure:"targetURL"`
		Site      string `mapstructure:"site"`
	} `mapstructure:"products"`
	Sites map[string]SiteLimits `mapstructure:"sites"`
}

// Limits returns the limits of a site, falling back to defaults.
func (c *Catalog) Limits(site models.Site) SiteLimits {
	limits := c.Sites[site]
	if limits.Concurrency <= 0 {
		limits.Concurrency = DefaultConcurrency
	}

	return limits
}

// LoadCatalog reads the product catalog from a YAML or JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
	}

	catalog := &Catalog{
		Products: make([]models.ProductRef, 0, len(file.Products)),
		Sites:    make(map[models.Site]SiteLimits, len(file.Sites)),
	}

	seen := make(map[string]struct{}, len(file.Products))
	for i, product := range file.Products {
		targetURL := product.URL
		if targetURL == "" {
			targetURL = product.TargetURL
		}

		if product.SKU == "" {
			return nil, fmt.Errorf("%w: product #%d (%s)", ErrEmptySKU, i, targetURL)
		}
		if _, dup := seen[product.SKU]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSKU, product.SKU)
		}
		if err := validateURL(targetURL); err != nil {
			return nil, fmt.Errorf("%w: product %s", err, product.SKU)
		}
		seen[product.SKU] = struct{}{}

		catalog.Products = append(catalog.Products, models.ProductRef{
			SKU:       product.SKU,
			TargetURL: targetURL,
			Site:      models.ParseSite(product.Site),
		})
	}

	for site, limits := range file.Sites {
		catalog.Sites[models.ParseSite(site)] = limits
	}

	return catalog, nil
}

func validateURL(raw string) error {
	if raw == "" {
		return ErrEmptyURL
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidURL, raw, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	return nil
}
