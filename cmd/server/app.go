package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/platform/gemini"
)

// application holds the shared application dependencies.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	generator generation.Generator
}

// newApplication wires the application. When gen is nil the generator is
// built from cfg.LLM.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	gen generation.Generator,
) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if gen == nil {
		var err error
		gen, err = gemini.NewGenerator(ctx, logger.With("component", "generator"), cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create generator: %w", err)
		}
	}

	logger.Info("Application initialized successfully")
	return &application{
		config:    cfg,
		logger:    logger,
		generator: gen,
	}, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
