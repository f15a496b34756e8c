package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"compintel/pkg/errors"
)

type Config struct {
	App           AppConfig
	AI            AIConfig
	Search        SearchConfig
	Server        ServerConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"compintel"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"1.0.0"`
}

// AIConfig configures the inference provider used by the agent pipeline.
// Model is optional; each provider has a sensible default.
type AIConfig struct {
	Provider          string        `envconfig:"AI_PROVIDER" default:"claude"`
	ClaudeKey         string        `envconfig:"ANTHROPIC_API_KEY"`
	OpenAIKey         string        `envconfig:"OPENAI_API_KEY"`
	GeminiKey         string        `envconfig:"GEMINI_API_KEY"`
	Model             string        `envconfig:"MODEL_NAME"`
	MaxTokens         int           `envconfig:"MAX_TOKENS" default:"3000"`
	Timeout           time.Duration `envconfig:"AI_TIMEOUT" default:"2m"`
	RequestsPerMinute int           `envconfig:"AI_REQUESTS_PER_MINUTE" default:"60"`
}

type SearchConfig struct {
	TavilyKey         string        `envconfig:"TAVILY_API_KEY"`
	Timeout           time.Duration `envconfig:"SEARCH_TIMEOUT" default:"30s"`
	RequestsPerMinute int           `envconfig:"SEARCH_REQUESTS_PER_MINUTE" default:"100"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8000"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables.
// It first tries to load a .env file (useful for local development).
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}

// Validate checks that the credentials needed for an analysis run are present.
// Called at the entry points before the pipeline is constructed.
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case "claude":
		if c.AI.ClaudeKey == "" {
			return errors.Wrap(errors.ErrProviderNotConfigured, "ANTHROPIC_API_KEY is not set")
		}
	case "openai":
		if c.AI.OpenAIKey == "" {
			return errors.Wrap(errors.ErrProviderNotConfigured, "OPENAI_API_KEY is not set")
		}
	case "gemini":
		if c.AI.GeminiKey == "" {
			return errors.Wrap(errors.ErrProviderNotConfigured, "GEMINI_API_KEY is not set")
		}
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "unknown AI provider %q", c.AI.Provider)
	}

	if c.Search.TavilyKey == "" {
		return errors.Wrap(errors.ErrProviderNotConfigured, "TAVILY_API_KEY is not set")
	}

	return nil
}
