package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/platform/logger"
	"github.com/phrazzld/email-writer/internal/redact"
	"google.golang.org/genai"
)

// SDKClient implements generation.Generator with the genai client library.
type SDKClient struct {
	logger  *slog.Logger
	client  *genai.Client
	model   string
	timeout time.Duration
}

var _ generation.Generator = (*SDKClient)(nil)

// NewSDKClient creates a genai-backed client. Only the scheme and host of
// cfg.APIURL are used; the SDK builds the model path itself.
func NewSDKClient(
	ctx context.Context,
	log *slog.Logger,
	cfg config.LLMConfig,
	httpClient *http.Client,
) (*SDKClient, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	baseURL := cfg.BaseURL()
	if baseURL == "" {
		return nil, fmt.Errorf("%w: API URL %q is not absolute", generation.ErrInvalidConfig, cfg.APIURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &SDKClient{
		logger:  log,
		client:  client,
		model:   cfg.ModelName,
		timeout: cfg.Timeout(),
	}, nil
}

// GenerateReply performs one GenerateContent call with the built prompt.
func (c *SDKClient) GenerateReply(ctx context.Context, req generation.Request) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	log.InfoContext(ctx, "Generating email reply",
		"content_length", len(req.EmailContent),
		"tone", req.Tone,
		"model", c.model)

	prompt := generation.BuildPrompt(req)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			log.ErrorContext(ctx, "API request failed",
				"status_code", apiErr.Code,
				"response_body", redact.String(apiErr.Message))
			return "", generation.NewStatusError(apiErr.Code)
		}
		log.ErrorContext(ctx, "Gemini API call error", "error", redact.Error(err))
		return "", fmt.Errorf("%w: %w", generation.ErrUpstreamUnavailable, err)
	}

	text, err := sdkFirstText(resp)
	if err != nil {
		log.ErrorContext(ctx, "Failed to extract content from Gemini API response", "error", err)
		return "", err
	}

	log.InfoContext(ctx, "Gemini API call successful", "reply_length", len(text))
	return text, nil
}

// sdkFirstText walks the SDK response the same way ExtractText walks the REST
// body. The SDK decodes an absent text field as "", so a first part carrying
// some other payload is reported as missing text.
func sdkFirstText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", generation.ErrEmptyResponse
	case len(resp.Candidates) == 0 || resp.Candidates[0] == nil:
		return "", fmt.Errorf("%w: no candidates", generation.ErrMissingContent)
	case resp.Candidates[0].Content == nil:
		return "", fmt.Errorf("%w: candidate has no content", generation.ErrMissingContent)
	case len(resp.Candidates[0].Content.Parts) == 0 || resp.Candidates[0].Content.Parts[0] == nil:
		return "", fmt.Errorf("%w: content has no parts", generation.ErrMissingContent)
	}

	part := resp.Candidates[0].Content.Parts[0]
	if part.Text == "" && hasNonTextPayload(part) {
		return "", fmt.Errorf("%w: first part has no text", generation.ErrMissingContent)
	}
	return part.Text, nil
}

func hasNonTextPayload(p *genai.Part) bool {
	return p.InlineData != nil ||
		p.FileData != nil ||
		p.FunctionCall != nil ||
		p.FunctionResponse != nil ||
		p.ExecutableCode != nil ||
		p.CodeExecutionResult != nil
}
