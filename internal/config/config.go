// Package config loads client configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds the full client configuration. The local store always works;
// the remote backend and object storage are optional and only required for
// login, sharing and migration.
type Config struct {
	// DBPath is the path of the local embedded database.
	DBPath string `env:"SAKELABELER_DB_PATH"`

	// AuthURL is the base URL of the hosted auth backend.
	AuthURL string `env:"SAKELABELER_AUTH_URL"`
	// AuthAPIKey is the public API key sent with auth requests.
	AuthAPIKey string `env:"SAKELABELER_AUTH_API_KEY"`

	// DatabaseDSN is the backend database DSN. postgres:// selects the
	// Postgres driver, anything else is treated as a SQLite path.
	DatabaseDSN string `env:"SAKELABELER_DATABASE_DSN"`

	// Object storage for photo binaries.
	S3Endpoint  string `env:"SAKELABELER_S3_ENDPOINT"`
	S3AccessKey string `env:"SAKELABELER_S3_ACCESS_KEY"`
	S3SecretKey string `env:"SAKELABELER_S3_SECRET_KEY"`
	S3Bucket    string `env:"SAKELABELER_S3_BUCKET" envDefault:"sakelabeler"`
	S3UseSSL    bool   `env:"SAKELABELER_S3_USE_SSL" envDefault:"true"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DBPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config dir: %w", err)
		}
		cfg.DBPath = filepath.Join(dir, "sakelabeler", "records.db")
	}

	return cfg, nil
}

// RemoteConfigured reports whether the remote backend is fully configured.
func (c *Config) RemoteConfigured() bool {
	return c.AuthURL != "" && c.AuthAPIKey != "" &&
		c.DatabaseDSN != "" && c.S3Endpoint != ""
}
