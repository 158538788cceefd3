package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrEmptyCatalogPath = errors.New("error getting CF_CATALOG_PATH: variable contains an empty string")
	ErrEmptyRecipient   = errors.New("error getting CF_EMAIL_TO: email user is set but no recipient is specified")
	ErrInvalidInterval  = errors.New("error getting CF_INTERVAL: interval must be positive")
)

type Config struct {
	Env             string        // Env is the current environment: local, dev, prod.
	CatalogPath     string        // CatalogPath is a YAML or JSON file with monitored products.
	StoragePath     string        // StoragePath enables state persistence when not empty.
	Interval        time.Duration // Interval between two check batches.
	HTTPTimeout     time.Duration
	UserAgent       string
	DeliveryTimeout time.Duration
	Email           Email
	Discord         Discord
	Tg              Telegram
}

type Email struct {
	Host     string
	Port     int
	User     string
	Password string
	To       []string
}

type Discord struct {
	WebhookURL string
}

type Telegram struct {
	Token   string        // Token is an unique telgram bot token.
	ChatID  int64         // ChatID receives the alerts.
	Timeout time.Duration // Timeout is a poller timeout duration.
}

// Enabled reports whether email delivery is configured.
func (e Email) Enabled() bool {
	return e.User != "" && len(e.To) > 0
}

// Enabled reports whether the Discord webhook is configured.
func (d Discord) Enabled() bool {
	return d.WebhookURL != ""
}

// Enabled reports whether Telegram delivery is configured.
func (t Telegram) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("CF")
	viper.AutomaticEnv()
	viper.AllowEmptyEnv(true)

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("CATALOG_PATH", "products.yaml")
	viper.SetDefault("INTERVAL", "1m")
	viper.SetDefault("HTTP_TIMEOUT", "15s")
	viper.SetDefault("DELIVERY_TIMEOUT", "30s")
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")

	if viper.GetString("CATALOG_PATH") == "" {
		panic(ErrEmptyCatalogPath)
	}
	if viper.GetDuration("INTERVAL") <= 0 {
		panic(ErrInvalidInterval)
	}

	cfg := &Config{
		Env:             viper.GetString("ENV"),
		CatalogPath:     viper.GetString("CATALOG_PATH"),
		StoragePath:     viper.GetString("STORAGE_PATH"),
		Interval:        viper.GetDuration("INTERVAL"),
		HTTPTimeout:     viper.GetDuration("HTTP_TIMEOUT"),
		UserAgent:       viper.GetString("USER_AGENT"),
		DeliveryTimeout: viper.GetDuration("DELIVERY_TIMEOUT"),
		Email: Email{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("EMAIL_USER"),
			Password: viper.GetString("EMAIL_PASS"),
			To:       splitList(viper.GetString("EMAIL_TO")),
		},
		Discord: Discord{
			WebhookURL: viper.GetString("DISCORD_WEBHOOK_URL"),
		},
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			ChatID:  viper.GetInt64("TELEGRAM_CHAT_ID"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
		},
	}

	if cfg.Email.User != "" && len(cfg.Email.To) == 0 {
		panic(ErrEmptyRecipient)
	}

	return cfg
}

// splitList splits a comma separated list, dropping empty items.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
