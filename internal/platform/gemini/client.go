package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/platform/logger"
	"github.com/phrazzld/email-writer/internal/redact"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 10 << 20

// Client implements generation.Generator by POSTing to the generateContent
// REST endpoint directly.
type Client struct {
	// logger is used when the request context carries none
	logger *slog.Logger

	// httpClient is shared across requests for connection reuse
	httpClient *http.Client

	// endpoint is the configured URL without credentials, safe to log
	endpoint string

	// requestURL is endpoint with the key query parameter added
	requestURL string

	// timeout bounds a single call when positive
	timeout time.Duration
}

var _ generation.Generator = (*Client)(nil)

// NewClient creates a REST client from cfg. A nil httpClient gets a client
// with transport defaults.
//
// Returns an error wrapping generation.ErrInvalidConfig when the URL or key
// is missing or the URL cannot be parsed.
func NewClient(log *slog.Logger, cfg config.LLMConfig, httpClient *http.Client) (*Client, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("%w: API URL cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", generation.ErrInvalidConfig)
	}

	u, err := url.Parse(cfg.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: API URL %q is not absolute", generation.ErrInvalidConfig, cfg.APIURL)
	}
	q := u.Query()
	q.Set("key", cfg.APIKey)
	u.RawQuery = q.Encode()

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		logger:     log,
		httpClient: httpClient,
		endpoint:   redact.String(cfg.APIURL),
		requestURL: u.String(),
		timeout:    cfg.Timeout(),
	}, nil
}

// GenerateReply builds the prompt for req, sends it upstream, and extracts
// the generated text. The call blocks until the API answers or ctx is done.
func (c *Client) GenerateReply(ctx context.Context, req generation.Request) (string, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	log.InfoContext(ctx, "Generating email reply",
		"content_length", len(req.EmailContent),
		"tone", req.Tone)

	prompt := generation.BuildPrompt(req)
	log.DebugContext(ctx, "Built email generation prompt",
		"prompt_length", len(prompt))

	body, err := json.Marshal(NewTextRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %w", generation.ErrUpstreamUnavailable, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.requestURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to build request: %w", generation.ErrUpstreamUnavailable, stripURL(err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.DebugContext(ctx, "Sending request to Gemini API", "endpoint", c.endpoint)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = stripURL(err)
		log.ErrorContext(ctx, "Gemini API call error", "error", redact.Error(err))
		return "", fmt.Errorf("%w: %w", generation.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.ErrorContext(ctx, "Failed to read Gemini API response", "error", redact.Error(err))
		return "", fmt.Errorf("%w: failed to read response: %w", generation.ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.ErrorContext(ctx, "API request failed",
			"status_code", resp.StatusCode,
			"response_body", redact.String(string(respBody)))
		return "", generation.NewStatusError(resp.StatusCode)
	}

	text, err := ExtractText(respBody)
	if err != nil {
		log.ErrorContext(ctx, "Failed to extract content from Gemini API response", "error", err)
		return "", err
	}

	log.InfoContext(ctx, "Gemini API call successful", "reply_length", len(text))
	return text, nil
}

// stripURL drops the *url.Error wrapper, whose message embeds the request
// URL and therefore the API key.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
