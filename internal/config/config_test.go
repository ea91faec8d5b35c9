package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("PASSWORD_MAX_ATTEMPTS", "")
	t.Setenv("AUTH_RATE_WINDOW", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("GOOGLE_ISSUER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 1000, cfg.Auth.PasswordMaxAttempts)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, []string{"http://localhost", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://accounts.google.com", cfg.Google.Issuer)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("AUTH_RATE_WINDOW", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoadRejectsNonPositiveAttempts(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PASSWORD_MAX_ATTEMPTS", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestGetIntEnvFallsBackOnGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, getIntEnv("SOME_INT", 7))
}
