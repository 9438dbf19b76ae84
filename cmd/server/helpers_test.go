package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/email-writer/internal/config"
	"github.com/phrazzld/email-writer/internal/platform/logger"
)

const testAPIKey = "integration-test-key"

// newTestConfig returns a valid configuration pointing at apiURL.
func newTestConfig(apiURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:               8080,
			LogLevel:           "debug",
			CORSAllowedOrigins: []string{"*"},
		},
		LLM: config.LLMConfig{
			Backend:   config.BackendREST,
			APIURL:    apiURL,
			APIKey:    testAPIKey,
			ModelName: "gemini-1.5-flash",
		},
	}
}

// newFakeUpstream starts a server standing in for the generateContent API.
func newFakeUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

// newTestLogger captures logs in a buffer and installs it as the default.
func newTestLogger(t *testing.T) (*logger.TestLogBuffer, *slog.Logger) {
	t.Helper()
	return logger.SetupTestLogger(t)
}
