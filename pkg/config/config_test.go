package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ADDR", "TLS_CERT_FILE", "TLS_KEY_FILE", "DATABASE_URL", "REDIS_ADDR",
		"OTEL_HOST", "OTEL_PROBABILITY", "SESSION_TTL", "LOG_LEVEL", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8443", c.Addr)
	assert.Equal(t, time.Hour, c.SessionTTL)
	assert.Equal(t, 1.0, c.OtelProbability)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.TLS())
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("ADDR", ":9000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("TLS_CERT_FILE", "certs/server.crt")
	t.Setenv("TLS_KEY_FILE", "certs/server.key")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "localhost:6379", c.RedisAddr)
	assert.Equal(t, 15*time.Minute, c.SessionTTL)
	assert.True(t, c.TLS())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "forever")
	_, err := Load()
	assert.Error(t, err)
}
