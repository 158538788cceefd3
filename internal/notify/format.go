package notify

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Houeta/stock-flow/internal/models"
)

// DigestSubject is the subject of every aggregated digest.
const DigestSubject = "Stock Changes Detected"

// FormatDigest renders a batch of changes as one message, one section per record, in the given order.
// It returns empty strings for an empty batch.
func FormatDigest(records []models.ChangeRecord) (string, string) {
	if len(records) == 0 {
		return "", ""
	}

	sections := make([]string, 0, len(records))
	for _, record := range records {
		sections = append(sections, formatSection(record))
	}

	return DigestSubject, strings.Join(sections, "\n\n")
}

// FormatAlert renders a single product as an immediate in-stock alert.
func FormatAlert(record models.ChangeRecord) string {
	return "🚨 *IN STOCK*\n" + formatSection(record)
}

func formatSection(record models.ChangeRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔹 *%s*\n🔗 URL: %s\n", record.SKU, record.TargetURL)

	if record.HasStatus() {
		fmt.Fprintf(&b, "Status: %s", record.Status)
		return b.String()
	}

	if len(record.Locations) == 0 {
		b.WriteString("   - no locations in stock")
		return b.String()
	}

	locations := slices.SortedFunc(slices.Values(record.Locations), func(a, b models.LocationQuantity) int {
		return strings.Compare(a.Location, b.Location)
	})
	lines := make([]string, 0, len(locations))
	for _, item := range locations {
		lines = append(lines, fmt.Sprintf("   - 📍 *%s* : %d", strings.ToLower(item.Location), item.Quantity))
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}
