package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable derived from a config key.
const EnvPrefix = "EMAILWRITER"

// Options controls where Load looks for settings beyond the environment.
type Options struct {
	// ConfigFile is an explicit config file path; empty searches ./config.*
	ConfigFile string

	// EnvFiles are loaded into the process environment before reading it.
	// When empty, ./.env is loaded if present.
	EnvFiles []string

	// Flags, when set, is bound so that changed flags override other sources
	Flags *pflag.FlagSet
}

// RegisterFlags adds the config-related flags to fs and returns Options that
// are filled in when fs is parsed.
func RegisterFlags(fs *pflag.FlagSet) *Options {
	opts := &Options{Flags: fs}
	fs.StringVar(&opts.ConfigFile, "config", "", "path to a config file (yaml, json, toml)")
	fs.StringSliceVar(&opts.EnvFiles, "env-file", nil, "dotenv files to load before reading the environment")
	fs.Int("port", 8080, "HTTP listen port")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	return opts
}

// flagKeys maps flag names registered by RegisterFlags to config keys.
var flagKeys = map[string]string{
	"port":      "server.port",
	"log-level": "server.log_level",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadWithOptions(Options{})
}

// LoadWithOptions is Load with explicit file and flag sources.
// Precedence, highest first: changed flags, environment, config file, defaults.
func LoadWithOptions(opts Options) (*Config, error) {
	if err := loadEnvFiles(opts.EnvFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings also honor the legacy variable names
	if err := v.BindEnv("llm.api_url", EnvPrefix+"_LLM_API_URL", "GEMINI_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}
	if err := v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
				}
			}
		}
	}

	if err := readConfigFile(v, opts.ConfigFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_file", "")
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("llm.backend", BackendREST)
	v.SetDefault("llm.model_name", "gemini-1.5-flash")
	v.SetDefault("llm.timeout_seconds", 0)
}

func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// loadEnvFiles never overrides variables already present in the environment.
func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("failed to load env files: %w", err)
	}
	return nil
}
