// Package main implements the entry point for the email-writer server,
// which turns an incoming email into a generated reply via the Gemini API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/platform/logger"
	"github.com/spf13/pflag"
)

func main() {
	fs := pflag.NewFlagSet("email-writer", pflag.ExitOnError)
	opts := config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	if err := run(*opts); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, builds the application and serves until SIGINT or
// SIGTERM.
func run(opts config.Options) error {
	cfg, log, err := initializeApp(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, log, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp(opts config.Options) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadWithOptions(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_backend", cfg.LLM.Backend)
	log.Debug("LLM configuration",
		"api_url_present", cfg.LLM.APIURL != "",
		"api_key_present", cfg.LLM.APIKey != "",
		"timeout", cfg.LLM.Timeout())

	return cfg, log, nil
}
