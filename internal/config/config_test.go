package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/presto_auth_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "", cfg.PrestoBaseURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://localhost/presto_auth_test")
	t.Setenv("APP_PORT", "9999")
	t.Setenv("PRESTO_CLIENT_ID", "client-abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.AppPort)
	assert.Equal(t, "client-abc", cfg.PrestoClientID)
}

func TestLoad_RequiresDatabaseDSN(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_DSN")
}
