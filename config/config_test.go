package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "TENANT_CACHE_TTL", "TENANT_UNSCOPED_FALLBACK", "DB_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Tenancy.CacheTTL)
	assert.False(t, cfg.Tenancy.UnscopedFallback)
	assert.Equal(t, 1<<20, cfg.HTTP.BodyLimit)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_ENABLED", "false")
	t.Setenv("TENANT_CACHE_TTL", "30s")
	t.Setenv("TENANT_UNSCOPED_FALLBACK", "true")
	t.Setenv("ENVIRONMENT", EnvironmentProduction)

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Tenancy.CacheTTL)
	assert.True(t, cfg.Tenancy.UnscopedFallback)
	assert.True(t, cfg.IsProduction())
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "muchas")
	t.Setenv("JWT_TTL", "-1h")
	t.Setenv("AUTO_MIGRATE", "quizas")

	cfg := FromEnv()

	assert.Equal(t, 30, cfg.Database.MaxConns)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestValidate_SecretoPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENVIRONMENT", EnvironmentProduction)

	cfg := FromEnv()
	require.ErrorIs(t, cfg.Validate(), ErrSecretoPorDefecto)

	cfg.Environment = EnvironmentDevelopment
	assert.NoError(t, cfg.Validate())

	t.Setenv("JWT_SECRET", "otro-secreto-largo")
	cfg = FromEnv()
	assert.True(t, cfg.IsProduction())
	assert.NoError(t, cfg.Validate())
}
