package gemini

import (
	"context"
	"log/slog"
	"testing"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	base := config.LLMConfig{
		APIURL:    "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent",
		APIKey:    "test-api-key",
		ModelName: "gemini-1.5-flash",
	}

	t.Run("nil_logger_returns_error", func(t *testing.T) {
		gen, err := NewGenerator(context.Background(), nil, base)
		assert.Nil(t, gen)
		assert.EqualError(t, err, "logger cannot be nil")
	})

	t.Run("rest_backend", func(t *testing.T) {
		cfg := base
		cfg.Backend = config.BackendREST

		gen, err := NewGenerator(context.Background(), slog.Default(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &Client{}, gen)
	})

	t.Run("empty_backend_defaults_to_rest", func(t *testing.T) {
		gen, err := NewGenerator(context.Background(), slog.Default(), base)
		require.NoError(t, err)
		assert.IsType(t, &Client{}, gen)
	})

	t.Run("sdk_backend", func(t *testing.T) {
		cfg := base
		cfg.Backend = config.BackendSDK

		gen, err := NewGenerator(context.Background(), slog.Default(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &SDKClient{}, gen)
	})

	t.Run("unknown_backend", func(t *testing.T) {
		cfg := base
		cfg.Backend = "grpc"

		gen, err := NewGenerator(context.Background(), slog.Default(), cfg)
		assert.Nil(t, gen)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})

	t.Run("invalid_config_returns_nil_generator", func(t *testing.T) {
		cfg := base
		cfg.APIKey = ""

		gen, err := NewGenerator(context.Background(), slog.Default(), cfg)
		assert.Nil(t, gen)
		assert.ErrorIs(t, err, generation.ErrInvalidConfig)
	})
}
