package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "STORAGE_DRIVER", "CATALOG_SOURCE", "PROFILE_TTL", "SHUTDOWN_TIMEOUT_SECONDS", "SMTP_ADDR"} {
		t.Setenv(k, "")
	}

	cfg := FromEnv()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, StorageMemory, cfg.StorageDriver)
	require.Equal(t, CatalogStatic, cfg.CatalogSource)
	require.Equal(t, 30*24*time.Hour, cfg.ProfileTTL)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Empty(t, cfg.SMTPAddr)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PROFILE_TTL", "12h")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg := FromEnv()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, StorageRedis, cfg.StorageDriver)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 12*time.Hour, cfg.ProfileTTL)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnv_ProfileTTLHours(t *testing.T) {
	t.Setenv("PROFILE_TTL", "48")
	require.Equal(t, 48*time.Hour, FromEnv().ProfileTTL)

	t.Setenv("PROFILE_TTL", "soon")
	require.Equal(t, 30*24*time.Hour, FromEnv().ProfileTTL)
}
