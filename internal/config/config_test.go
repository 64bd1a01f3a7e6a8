package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret-key-for-sessions")
	t.Setenv("API_BASE_URL", "http://backend.local/api/")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.App.Port)
	assert.Equal(t, "http://backend.local/api", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, StoreMemory, cfg.Session.Store)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 15*time.Minute, cfg.Session.PruneInterval)
	assert.Equal(t, 250*time.Millisecond, cfg.Feature.LookupDebounce)
	assert.True(t, cfg.Feature.GenerateInitialPassword)
	assert.False(t, cfg.Feature.EnforceLeaveDateOrder)
	assert.Empty(t, cfg.Security.AllowedOrigins)
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("ENFORCE_LEAVE_DATE_ORDER", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.App.Port)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.Feature.EnforceLeaveDateOrder)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("APP_PORT", "not-a-port")

	_, err := Load()
	assert.ErrorContains(t, err, "APP_PORT")
}

func TestValidate_PostgresNeedsPassword(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_STORE", StorePostgres)
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PASSWORD")
}

func TestValidate_UnknownStore(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("SESSION_STORE", "etcd")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", cfg.DatabaseURL())
}
