package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppMode)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 10080, cfg.JWT.AccessTokenMins)
	assert.Equal(t, 7, cfg.JWT.RefreshTokenDays)
	assert.False(t, cfg.Auth.DisableAdminAuth)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	t.Setenv("APP_MODE", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestAdminAuthBypassHonoredInDev(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DISABLE_ADMIN_AUTH", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Auth.DisableAdminAuth)
}

// The dev bypass must never survive into a prod config, regardless of
// the environment.
func TestAdminAuthBypassForcedOffInProd(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("DISABLE_ADMIN_AUTH", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Auth.DisableAdminAuth)
}

func TestAllowedOriginsFallback(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())

	t.Setenv("ALLOWED_ORIGINS", "https://app.staynest.in")
	assert.Equal(t, "https://app.staynest.in", cfg.GetAllowedOrigins())
}
