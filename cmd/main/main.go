package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Houeta/stock-flow/internal/bot"
	"github.com/Houeta/stock-flow/internal/config"
	"github.com/Houeta/stock-flow/internal/notify"
	"github.com/Houeta/stock-flow/internal/parser"
	"github.com/Houeta/stock-flow/internal/repository/sqlite"
	"github.com/Houeta/stock-flow/internal/services/checker"
	"github.com/Houeta/stock-flow/internal/services/scheduler"
	"github.com/Houeta/stock-flow/internal/services/tracker"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	logger.InfoContext(ctx, "Catalog loaded", "products", len(catalog.Products))

	state := tracker.New()

	var digests []notify.DigestSink
	var alerts []notify.AlertSink

	if cfg.Email.Enabled() {
		emailSink, err := notify.NewEmailSink(
			cfg.Email.Host, cfg.Email.Port, cfg.Email.User, cfg.Email.Password, cfg.Email.To,
		)
		if err != nil {
			log.Fatalf("Failed to init email sink: %v", err)
		}
		digests = append(digests, emailSink)
	}
	if cfg.Discord.Enabled() {
		alerts = append(alerts, notify.NewDiscordSink(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.Discord.WebhookURL))
	}

	var stockBot *bot.Bot
	if cfg.Tg.Enabled() {
		stockBot, err = bot.NewBot(logger, cfg.Tg.Token, cfg.Tg.Timeout, state)
		if err != nil {
			log.Fatalf("Failed to init bot: %v", err)
		}
		alerts = append(alerts, notify.NewTelegramSink(stockBot, cfg.Tg.ChatID))
	}

	if len(digests) == 0 {
		logger.WarnContext(ctx, "No digest channel configured, digests go to the log")
		digests = append(digests, notify.NewLogSink(logger))
	}
	if len(alerts) == 0 {
		logger.WarnContext(ctx, "No alert channel configured, alerts go to the log")
		alerts = append(alerts, notify.NewLogSink(logger))
	}

	dispatcher := notify.NewDispatcher(logger, cfg.DeliveryTimeout, digests, alerts)
	observer := parser.NewParser(logger, &http.Client{Timeout: cfg.HTTPTimeout}, cfg.UserAgent)

	var opts []checker.Option
	if cfg.StoragePath != "" {
		repo, err := sqlite.NewRepository(ctx, logger, cfg.StoragePath)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer repo.Close()
		opts = append(opts, checker.WithRepository(repo))
	}

	stockChecker := checker.NewChecker(logger, observer, state, dispatcher, catalog, opts...)
	if err = stockChecker.Restore(ctx); err != nil {
		logger.ErrorContext(ctx, "Failed to restore state, starting fresh", "error", err)
	}

	sched, err := scheduler.New(logger, cfg.Interval, func(ctx context.Context) {
		if _, err := stockChecker.RunBatch(ctx); err != nil {
			logger.WarnContext(ctx, "Batch dropped", "error", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to init scheduler: %v", err)
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	sched.Start(ctx)

	// Start the bot in a goroutine to allow main to listen for signals.
	if stockBot != nil {
		go stockBot.Start()
	}

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	sched.Stop()
	dispatcher.Wait()

	// Stop the bot gracefully.
	if stockBot != nil {
		stockBot.Stop()
	}

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
