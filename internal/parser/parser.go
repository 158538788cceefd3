package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Houeta/stock-flow/internal/models"
	"github.com/PuerkitoBio/goquery"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

// Page selectors.
const (
	bestBuyCartButton = `button[data-automation="addToCartButton"]`
	neweggCartButton  = `#ProductBuy button.btn-primary`
	canadaStockRows   = `#checkothertores .modal-content .row`
)

// Parser observes product pages and turns them into availability snapshots.
type Parser struct {
	log       *slog.Logger
	client    *http.Client
	userAgent string
}

func NewParser(log *slog.Logger, client *http.Client, userAgent string) *Parser {
	if client == nil {
		client = http.DefaultClient
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Parser{log: log, client: client, userAgent: userAgent}
}

// Observe fetches the product page and reads its availability.
// Products on unknown sites are not fetched and yield an unrecognized snapshot.
func (p *Parser) Observe(ctx context.Context, ref models.ProductRef) (models.Snapshot, error) {
	if !ref.Site.Known() {
		p.log.WarnContext(ctx, "Unknown site for product", "sku", ref.SKU, "site", ref.Site)
		return models.UnrecognizedSnapshot(ref), nil
	}

	resp, err := p.getHTMLResponse(ctx, ref.TargetURL)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to get html response for %s: %w", ref.SKU, err)
	}
	defer resp.Body.Close()

	return p.parseSnapshot(ctx, ref, resp.Body)
}

func (p *Parser) getHTMLResponse(ctx context.Context, destURL string) (*http.Response, error) {
	reqURL, err := url.Parse(destURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse destination URL %s: %w", destURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new request %s: %w", reqURL.String(), err)
	}

	req.Header.Add("User-Agent", p.userAgent)
	req.Header.Add("Accept-Language", "en-US,en;q=0.9")

	p.log.DebugContext(ctx, "Send request", "method", req.Method, "URL", req.URL)

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to request %s: %w", destURL, err)
	}

	if res.StatusCode != http.StatusOK {
		res.Body.Close()
		return nil, fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	p.log.DebugContext(ctx, "Successfully received http response", "status code", res.StatusCode)

	return res, nil
}

func (p *Parser) parseSnapshot(ctx context.Context, ref models.ProductRef, inp io.Reader) (models.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(inp)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("data cannot be parsed as HTML: %w", err)
	}

	switch ref.Site {
	case models.SiteBestBuy:
		available := p.parseBestBuy(ctx, ref.SKU, doc)
		return models.PurchasableSnapshot(ref, available), nil
	case models.SiteNewegg:
		available := p.parseNewegg(ctx, ref.SKU, doc)
		return models.PurchasableSnapshot(ref, available), nil
	case models.SiteCanadaComputers:
		return models.StoreStockSnapshot(ref, p.parseCanadaComputers(ctx, ref.SKU, doc)), nil
	default:
		return models.UnrecognizedSnapshot(ref), nil
	}
}

func (p *Parser) parseBestBuy(ctx context.Context, sku string, doc *goquery.Document) bool {
	button := doc.Find(bestBuyCartButton).First()
	if button.Length() == 0 {
		p.log.InfoContext(ctx, "BestBuy: add to cart button not found", "sku", sku)
		return false
	}

	_, disabled := button.Attr("disabled")
	p.log.InfoContext(ctx, "BestBuy: checked", "sku", sku, "available", !disabled)

	return !disabled
}

func (p *Parser) parseNewegg(ctx context.Context, sku string, doc *goquery.Document) bool {
	button := doc.Find(neweggCartButton).First()
	if button.Length() == 0 {
		p.log.InfoContext(ctx, "Newegg: add to cart button not found", "sku", sku)
		return false
	}

	_, disabled := button.Attr("disabled")
	available := !disabled && !button.HasClass("btn-disabled")
	p.log.InfoContext(ctx, "Newegg: checked", "sku", sku, "available", available)

	return available
}

func (p *Parser) parseCanadaComputers(ctx context.Context, sku string, doc *goquery.Document) map[string]int {
	stock := make(map[string]int)

	rows := doc.Find(canadaStockRows)
	if rows.Length() == 0 {
		p.log.InfoContext(ctx, "Canada Computers: no stock info found", "sku", sku)
		return stock
	}

	rows.Each(func(idx int, s *goquery.Selection) {
		spans := s.ChildrenFiltered("span")
		if spans.Length() < 2 {
			p.log.DebugContext(ctx, "stock row has insufficient cells", "index", idx, "length", spans.Length())
			return
		}

		location := strings.TrimSpace(spans.Eq(0).Text())
		quantity, err := leadingInt(spans.Eq(1).Text())
		if err != nil || quantity <= 0 || location == "" {
			return
		}
		stock[location] = quantity
	})

	p.log.InfoContext(ctx, "Canada Computers: checked", "sku", sku, "locations", len(stock))

	return stock
}

// leadingInt parses the leading digits of s, so "5+" reads as 5.
func leadingInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end == -1 {
		end = len(s)
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", s, err)
	}

	return n, nil
}
