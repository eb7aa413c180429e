package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server settings read from the environment.
type Config struct {
	DatabaseURL     string        `env:"TRIVIA_DATABASE_URL" envDefault:"sqlite://trivia.db"`
	APIPort         int           `env:"TRIVIA_API_PORT" envDefault:"9090"`
	LogLevel        string        `env:"TRIVIA_LOG_LEVEL" envDefault:"info"`
	AllowOrigin     string        `env:"TRIVIA_ALLOW_ORIGIN" envDefault:"*"`
	QuestionsFile   string        `env:"TRIVIA_QUESTIONS_FILE"`
	ArchiveInterval time.Duration `env:"TRIVIA_ARCHIVE_INTERVAL" envDefault:"5s"`
	EventQueueSize  int           `env:"TRIVIA_EVENT_QUEUE_SIZE" envDefault:"1000"`
	TLSCertFile     string        `env:"TRIVIA_API_TLS_CERT_FILE"`
	TLSKeyFile      string        `env:"TRIVIA_API_TLS_KEY_FILE"`
}

// Load reads an optional .env file from dotenvPath and then parses the environment.
// Variables already set in the environment win over the file.
// The result is not validated, so callers can apply overrides first and then call Validate.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks values that env.Parse cannot.
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("invalid API port %d", c.APIPort)
	}
	if c.ArchiveInterval <= 0 {
		return fmt.Errorf("archive interval must be positive, got %s", c.ArchiveInterval)
	}
	if c.EventQueueSize <= 0 {
		return fmt.Errorf("event queue size must be positive, got %d", c.EventQueueSize)
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("TLS needs both a certificate and a key file")
	}
	return nil
}

// TLSEnabled reports whether both TLS files are configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
