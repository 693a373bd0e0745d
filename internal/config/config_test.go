package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	loadDotEnv = func() error { return nil }
	t.Cleanup(func() { loadDotEnv = defaultLoadDotEnv })
	t.Setenv("DATABASE_URL", "postgres://localhost/blog")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "s3cret")
	for _, k := range []string{"REDIS_DB", "REDIS_PASSWORD", "PORT", "WORKER_COUNT", "LOG_LEVEL",
		"TOKEN_TTL", "ROLE_CACHE_TTL", "CORS_ORIGINS", "RUN_MIGRATIONS", "RESET_MIGRATIONS", "EVENTS_CHANNEL"} {
		t.Setenv(k, "")
	}
}

var defaultLoadDotEnv = loadDotEnv

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://localhost/blog", cfg.DatabaseURL)
	require.Equal(t, 0, cfg.RedisDB)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, 1, cfg.WorkerCount)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.True(t, cfg.RunMigrations)
	require.False(t, cfg.ResetMigrations)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, 10*time.Minute, cfg.RoleCacheTTL)
	require.Equal(t, "blog:moderation", cfg.EventsChannel)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("ROLE_CACHE_TTL", "30s")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("RESET_MIGRATIONS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, ":9000", cfg.Addr())
	require.Equal(t, 4, cfg.WorkerCount)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, 30*time.Second, cfg.RoleCacheTTL)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.False(t, cfg.RunMigrations)
	require.True(t, cfg.ResetMigrations)
}

func TestLoadErrors(t *testing.T) {
	// JWT_SECRET 不進 Config，但仍是啟動必要條件
	cases := map[string][2]string{
		"missing db":     {"DATABASE_URL", ""},
		"missing redis":  {"REDIS_ADDR", ""},
		"missing secret": {"JWT_SECRET", ""},
		"bad redis db":   {"REDIS_DB", "x"},
		"bad workers":    {"WORKER_COUNT", "0"},
		"bad bool":       {"RUN_MIGRATIONS", "maybe"},
		"bad ttl":        {"TOKEN_TTL", "forever"},
		"bad cache ttl":  {"ROLE_CACHE_TTL", "10"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			require.Error(t, err)
		})
	}
}
