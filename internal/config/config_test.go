package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	keys := []string{
		"SERVICE_NAME", "LOGGER_LEVEL", "PORT", "STORAGE_DRIVER", "DATABASE_URL",
		"JWT_SECRET", "JWT_ISSUER", "JWT_TTL_MINUTES", "CORS_ALLOWED_ORIGINS",
		"ADMIN_EMAIL", "ADMIN_PASSWORD", "UPLOAD_DIR", "MAX_UPLOAD_MB",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	}
	for _, k := range keys {
		t.Setenv(k, vars[k])
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL": "postgres://localhost/driveops",
		"JWT_SECRET":   "s3cret",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadSize)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateBurst)
	assert.False(t, cfg.BootstrapAdmin())
}

func TestLoadRequiresSecret(t *testing.T) {
	setEnv(t, map[string]string{"DATABASE_URL": "postgres://localhost/driveops"})

	_, err := Load()
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadRequiresDatabaseForPostgres(t *testing.T) {
	setEnv(t, map[string]string{"JWT_SECRET": "s3cret"})

	_, err := Load()
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoadMemoryDriver(t *testing.T) {
	setEnv(t, map[string]string{
		"STORAGE_DRIVER":       "memory",
		"JWT_SECRET":           "s3cret",
		"JWT_TTL_MINUTES":      "1440",
		"CORS_ALLOWED_ORIGINS": "http://localhost:5173, https://ops.example.com",
		"ADMIN_EMAIL":          " Admin@Example.com ",
		"ADMIN_PASSWORD":       "changeme",
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, time.Hour, cfg.JWTTTL, "token lifetime is not configurable")
	assert.Equal(t, []string{"http://localhost:5173", "https://ops.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.True(t, cfg.BootstrapAdmin())
}

func TestLoadRejectsHalfAdmin(t *testing.T) {
	setEnv(t, map[string]string{
		"STORAGE_DRIVER": "memory",
		"JWT_SECRET":     "s3cret",
		"ADMIN_EMAIL":    "admin@example.com",
	})

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	setEnv(t, map[string]string{
		"STORAGE_DRIVER": "mongo",
		"JWT_SECRET":     "s3cret",
	})

	_, err := Load()
	assert.Error(t, err)
}
