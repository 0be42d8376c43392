package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrMissingRequired = errors.New("missing required configuration")

type Config struct {
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	PostgresURL  string `envconfig:"POSTGRES_URL"`

	EmbedModel          string `envconfig:"EMBED_MODEL" default:"embedding-001"`
	EmbedTimeoutSeconds int    `envconfig:"EMBED_TIMEOUT_SECONDS" default:"60"`
	EmbedMaxChunkBytes  int    `envconfig:"EMBED_MAX_CHUNK_BYTES" default:"10000"`

	ConnectRetryAttempts     int `envconfig:"CONNECT_RETRY_ATTEMPTS" default:"10"`
	ConnectRetryDelaySeconds int `envconfig:"CONNECT_RETRY_DELAY_SECONDS" default:"2"`
}

func Load() (*Config, error) {
	// Ignore errors, the vars might be set in the shell instead
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects a configuration without credentials. There is no mock or
// insecure fallback mode: both values must be present for a run to start.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY", ErrMissingRequired)
	}
	if c.PostgresURL == "" {
		return fmt.Errorf("%w: POSTGRES_URL", ErrMissingRequired)
	}
	return nil
}
