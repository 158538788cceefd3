package bot

import (
	"fmt"
	"strings"

	"github.com/Houeta/stock-flow/internal/models"
	"github.com/Houeta/stock-flow/internal/services/differ"
	"gopkg.in/telebot.v4"
)

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	if err := ctx.Send("Hello! Send /status to see the last known stock of every product."); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// statusHandler process command /status.
func (b *Bot) statusHandler(ctx telebot.Context) error {
	b.log.Info("User requested status", "username", ctx.Sender().Username)

	if err := ctx.Send(formatStatus(b.status.Export()), telebot.ModeMarkdown, telebot.NoPreview); err != nil {
		return fmt.Errorf("failed to send status message: %w", err)
	}

	return nil
}

// markdownEscaper escapes Telegram's legacy Markdown. Escapes only work outside entities.
var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// formatStatus lists every known product with its last observed availability.
func formatStatus(state models.State) string {
	if len(state.Snapshots) == 0 {
		return "No products checked yet."
	}

	lines := make([]string, 0, len(state.Snapshots))
	for _, snap := range state.Snapshots {
		sku := markdownEscaper.Replace(snap.SKU)
		record := differ.Describe(snap)
		if record == nil {
			lines = append(lines, fmt.Sprintf("▫️ %s (%s): unknown site", sku, markdownEscaper.Replace(string(snap.Site))))
			continue
		}

		marker := "🔴"
		if snap.InStock() {
			marker = "🟢"
		}

		if record.HasStatus() {
			lines = append(lines, fmt.Sprintf("%s %s: %s", marker, sku, record.Status))
			continue
		}

		total := 0
		for _, item := range record.Locations {
			total += item.Quantity
		}
		lines = append(lines, fmt.Sprintf("%s %s: %d in %d locations", marker, sku, total, len(record.Locations)))
	}

	return strings.Join(lines, "\n")
}
