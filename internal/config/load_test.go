package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// managedEnv lists every variable Load reads, so each test starts clean.
var managedEnv = []string{
	"EMAILWRITER_SERVER_PORT",
	"EMAILWRITER_SERVER_LOG_LEVEL",
	"EMAILWRITER_SERVER_LOG_FILE",
	"EMAILWRITER_SERVER_CORS_ALLOWED_ORIGINS",
	"EMAILWRITER_LLM_BACKEND",
	"EMAILWRITER_LLM_API_URL",
	"EMAILWRITER_LLM_API_KEY",
	"EMAILWRITER_LLM_MODEL_NAME",
	"EMAILWRITER_LLM_TIMEOUT_SECONDS",
	"GEMINI_URL",
	"GEMINI_KEY",
}

// setupEnv clears the managed variables and then applies envVars.
func setupEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for _, name := range managedEnv {
		t.Setenv(name, "")
	}
	for name, value := range envVars {
		t.Setenv(name, value)
	}
}

const testAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

// TestLoadDefaults verifies that the Load function sets the expected default values
// when only the required fields are present.
func TestLoadDefaults(t *testing.T) {
	setupEnv(t, map[string]string{
		"EMAILWRITER_LLM_API_URL": testAPIURL,
		"EMAILWRITER_LLM_API_KEY": "test-api-key",
	})

	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, BackendREST, cfg.LLM.Backend)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.ModelName)
	assert.Zero(t, cfg.LLM.Timeout(), "No timeout should be configured by default")
}

// TestLoadFromEnv verifies that the Load function correctly reads values from environment variables.
func TestLoadFromEnv(t *testing.T) {
	setupEnv(t, map[string]string{
		"EMAILWRITER_SERVER_PORT":                 "9090",
		"EMAILWRITER_SERVER_LOG_LEVEL":            "debug",
		"EMAILWRITER_SERVER_CORS_ALLOWED_ORIGINS": "chrome-extension://abc,https://mail.example.com",
		"EMAILWRITER_LLM_BACKEND":                 "sdk",
		"EMAILWRITER_LLM_API_URL":                 testAPIURL,
		"EMAILWRITER_LLM_API_KEY":                 "test-api-key",
		"EMAILWRITER_LLM_MODEL_NAME":              "gemini-2.0-flash",
		"EMAILWRITER_LLM_TIMEOUT_SECONDS":         "30",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, []string{"chrome-extension://abc", "https://mail.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, BackendSDK, cfg.LLM.Backend)
	assert.Equal(t, testAPIURL, cfg.LLM.APIURL)
	assert.Equal(t, "test-api-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.ModelName)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout())
}

// TestLoadLegacyEnvNames verifies the unprefixed variable names are honored.
func TestLoadLegacyEnvNames(t *testing.T) {
	setupEnv(t, map[string]string{
		"GEMINI_URL": testAPIURL,
		"GEMINI_KEY": "legacy-key",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, testAPIURL, cfg.LLM.APIURL)
	assert.Equal(t, "legacy-key", cfg.LLM.APIKey)
}

// TestLoadValidationErrors verifies that the Load function fails fast on bad configuration.
func TestLoadValidationErrors(t *testing.T) {
	valid := map[string]string{
		"EMAILWRITER_LLM_API_URL": testAPIURL,
		"EMAILWRITER_LLM_API_KEY": "test-api-key",
	}
	with := func(overrides map[string]string) map[string]string {
		merged := make(map[string]string, len(valid)+len(overrides))
		for k, v := range valid {
			merged[k] = v
		}
		for k, v := range overrides {
			merged[k] = v
		}
		return merged
	}

	testCases := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name:    "Missing API URL",
			envVars: map[string]string{"EMAILWRITER_LLM_API_KEY": "test-api-key"},
		},
		{
			name:    "Missing API key",
			envVars: map[string]string{"EMAILWRITER_LLM_API_URL": testAPIURL},
		},
		{
			name:    "Missing both",
			envVars: map[string]string{},
		},
		{
			name:    "Invalid API URL",
			envVars: with(map[string]string{"EMAILWRITER_LLM_API_URL": "not a url"}),
		},
		{
			name:    "Invalid port number",
			envVars: with(map[string]string{"EMAILWRITER_SERVER_PORT": "999999"}),
		},
		{
			name:    "Invalid log level",
			envVars: with(map[string]string{"EMAILWRITER_SERVER_LOG_LEVEL": "invalid-level"}),
		},
		{
			name:    "Unknown backend",
			envVars: with(map[string]string{"EMAILWRITER_LLM_BACKEND": "grpc"}),
		},
		{
			name:    "Negative timeout",
			envVars: with(map[string]string{"EMAILWRITER_LLM_TIMEOUT_SECONDS": "-1"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupEnv(t, tc.envVars)

			cfg, err := Load()

			require.Error(t, err, "Load() should return an error with invalid configuration")
			assert.Contains(t, err.Error(), "validation failed")
			assert.Nil(t, cfg, "Config should be nil when an error occurs")
		})
	}
}

func TestLoadWithOptions_ConfigFile(t *testing.T) {
	setupEnv(t, map[string]string{
		"EMAILWRITER_LLM_API_KEY": "from-env",
	})

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server:\n  port: 7070\n  log_level: warn\nllm:\n  api_url: " + testAPIURL + "\n  api_key: from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadWithOptions(Options{ConfigFile: path})

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Server.LogLevel)
	assert.Equal(t, testAPIURL, cfg.LLM.APIURL)
	assert.Equal(t, "from-env", cfg.LLM.APIKey, "environment should override the config file")
}

func TestLoadWithOptions_MissingConfigFile(t *testing.T) {
	setupEnv(t, map[string]string{})

	cfg, err := LoadWithOptions(Options{ConfigFile: filepath.Join(t.TempDir(), "absent.yaml")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
	assert.Nil(t, cfg)
}

func TestLoadWithOptions_EnvFile(t *testing.T) {
	setupEnv(t, map[string]string{})
	// godotenv refuses to override variables that exist, even when empty
	require.NoError(t, os.Unsetenv("EMAILWRITER_LLM_API_URL"))
	require.NoError(t, os.Unsetenv("EMAILWRITER_LLM_API_KEY"))
	t.Cleanup(func() {
		_ = os.Unsetenv("EMAILWRITER_LLM_API_URL")
		_ = os.Unsetenv("EMAILWRITER_LLM_API_KEY")
	})

	path := filepath.Join(t.TempDir(), "test.env")
	content := "EMAILWRITER_LLM_API_URL=" + testAPIURL + "\nEMAILWRITER_LLM_API_KEY=dotenv-key\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadWithOptions(Options{EnvFiles: []string{path}})

	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.LLM.APIKey)
}

func TestLoadWithOptions_Flags(t *testing.T) {
	setupEnv(t, map[string]string{
		"EMAILWRITER_SERVER_PORT": "9090",
		"EMAILWRITER_LLM_API_URL": testAPIURL,
		"EMAILWRITER_LLM_API_KEY": "test-api-key",
	})

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts := RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--port=9191", "--log-level=error"}))

	cfg, err := LoadWithOptions(*opts)

	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port, "changed flags should override the environment")
	assert.Equal(t, "error", cfg.Server.LogLevel)
}

func TestLLMConfig_BaseURL(t *testing.T) {
	assert.Equal(t, "https://generativelanguage.googleapis.com/", LLMConfig{APIURL: testAPIURL}.BaseURL())
	assert.Equal(t, "http://127.0.0.1:9999/", LLMConfig{APIURL: "http://127.0.0.1:9999/v1beta/models/m:generateContent"}.BaseURL())
	assert.Empty(t, LLMConfig{APIURL: "::bad"}.BaseURL())
}
