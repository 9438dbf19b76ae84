package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/redact"
)

// NewGenerator creates the generation.Generator selected by cfg.Backend.
//
// Parameters:
//   - ctx: Context for initialization
//   - logger: A logger for recording operations
//   - cfg: LLM configuration including the endpoint, key and backend
//
// Returns:
//   - A generation.Generator implementation
//   - An error wrapping generation.ErrInvalidConfig if initialization fails
func NewGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (generation.Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	// One client for the process so connections are pooled across requests
	httpClient := &http.Client{}

	switch cfg.Backend {
	case config.BackendREST, "":
		logger.InfoContext(ctx, "Initializing Gemini REST client", "endpoint", redact.String(cfg.APIURL))
		client, err := NewClient(logger, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.BackendSDK:
		logger.InfoContext(ctx, "Initializing Gemini SDK client", "model", cfg.ModelName)
		client, err := NewSDKClient(ctx, logger, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", generation.ErrInvalidConfig, cfg.Backend)
	}
}
