package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SAKELABELER_DB_PATH", "/tmp/records.db")
	t.Setenv("SAKELABELER_AUTH_URL", "https://auth.example.com")
	t.Setenv("SAKELABELER_AUTH_API_KEY", "public-key")
	t.Setenv("SAKELABELER_DATABASE_DSN", "postgres://app@db/sake")
	t.Setenv("SAKELABELER_S3_ENDPOINT", "s3.example.com")
	t.Setenv("SAKELABELER_S3_USE_SSL", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/records.db", cfg.DBPath)
	assert.Equal(t, "https://auth.example.com", cfg.AuthURL)
	assert.Equal(t, "postgres://app@db/sake", cfg.DatabaseDSN)
	assert.Equal(t, "sakelabeler", cfg.S3Bucket)
	assert.False(t, cfg.S3UseSSL)
	assert.True(t, cfg.RemoteConfigured())
}

func TestLoadDefaultsDBPath(t *testing.T) {
	t.Setenv("SAKELABELER_DB_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Contains(t, cfg.DBPath, "sakelabeler")
}

func TestRemoteConfigured(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.RemoteConfigured())

	cfg.AuthURL = "https://auth.example.com"
	cfg.AuthAPIKey = "key"
	cfg.DatabaseDSN = "records.db"
	assert.False(t, cfg.RemoteConfigured())

	cfg.S3Endpoint = "s3.example.com"
	assert.True(t, cfg.RemoteConfigured())
}
