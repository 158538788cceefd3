package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// discordMaxContent is the message length limit of a Discord webhook.
const discordMaxContent = 2000

// DiscordSink posts alerts to a Discord webhook.
type DiscordSink struct {
	client     *http.Client
	webhookURL string
}

// NewDiscordSink creates a DiscordSink. A nil client means http.DefaultClient.
func NewDiscordSink(client *http.Client, webhookURL string) *DiscordSink {
	if client == nil {
		client = http.DefaultClient
	}

	return &DiscordSink{client: client, webhookURL: webhookURL}
}

// Name implements AlertSink.
func (d *DiscordSink) Name() string {
	return "discord"
}

// DeliverAlert implements AlertSink.
func (d *DiscordSink) DeliverAlert(ctx context.Context, body string) error {
	const opn = "notify.DiscordSink.DeliverAlert"

	payload, err := json.Marshal(map[string]string{"content": truncate(body, discordMaxContent)})
	if err != nil {
		return fmt.Errorf("%s: failed to encode payload: %w", opn, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", opn, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to post webhook: %w", opn, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s: status code error: [%d] %s", opn, resp.StatusCode, resp.Status)
	}

	return nil
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit-1]) + "…"
}
