package config

import (
	"net/url"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// LogFile, when set, receives a rotated copy of the log stream
	LogFile string `mapstructure:"log_file"`

	// CORSAllowedOrigins lists origins allowed to call the API from a browser
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"dive,required"`
}

// Backends understood by LLMConfig.Backend.
const (
	BackendREST = "rest"
	BackendSDK  = "sdk"
)

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// Backend selects the raw REST client or the genai SDK client
	Backend string `mapstructure:"backend" validate:"required,oneof=rest sdk"`

	// APIURL is the full generateContent endpoint for the REST backend.
	// The SDK backend uses only its scheme and host.
	APIURL string `mapstructure:"api_url" validate:"required,url"`
	APIKey string `mapstructure:"api_key" validate:"required"`

	ModelName string `mapstructure:"model_name" validate:"required_if=Backend sdk"`

	// TimeoutSeconds bounds each upstream call; 0 leaves the transport default
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// Timeout returns the upstream call timeout, or zero for none.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BaseURL returns the scheme and host of APIURL with a trailing slash.
func (c LLMConfig) BaseURL() string {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/"
}
