package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shoptext/shoptext/internal/config"
	"github.com/shoptext/shoptext/internal/server"
	"github.com/shoptext/shoptext/internal/sms"
	"github.com/shoptext/shoptext/internal/template"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		return runServe(configPath)
	},
}

func init() {
	serveCmd.Flags().String("config", "", "Path to config file (default: shoptext.toml)")
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging.Level, cfg.Logging.Format)

	store, err := template.NewStore(cfg.Templates.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	sender, gateway := buildSender(cfg, logger)
	if cfg.Shopify.WebhookSecret == "" {
		logger.Warn("shopify.webhook_secret is not set; all webhook deliveries will be rejected")
	}

	srv := server.New(cfg, logger, store, sender, gateway)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	}
}

// buildSender picks the SMS backend from config. The second return is the
// concrete Termii client for account queries, nil for the log backend or
// when no API key is configured.
func buildSender(cfg *config.Config, logger *slog.Logger) (sms.Sender, *sms.TermiiClient) {
	if cfg.Termii.Backend == "log" || cfg.Termii.APIKey == "" {
		if cfg.Termii.Backend != "log" {
			logger.Warn("termii.api_key is not set; SMS sends will only be logged")
		}
		return sms.NewLogSender(logger), nil
	}
	client := sms.NewTermiiClient(cfg.Termii.APIKey, cfg.Termii.BaseURL)
	return client, client
}

func newLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseSlogLevel(level)}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func parseSlogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
