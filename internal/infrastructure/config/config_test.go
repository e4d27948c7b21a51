package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads defaults", func(t *testing.T) {
		t.Setenv("SUPABASE_JWT_SECRET", "secret")
		t.Setenv("DATABASE_URL", "postgres://localhost/lcp")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "UTC", cfg.Database.Timezone)
		assert.Equal(t, 30*time.Second, cfg.Cache.StatusTTL)
		assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.HTTP.CORSOrigins)
		assert.False(t, cfg.UsePostgrest())
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("SUPABASE_JWT_SECRET", "secret")
		t.Setenv("SUPABASE_URL", "https://lcp.supabase.co")
		t.Setenv("SUPABASE_SERVICE_KEY", "service")
		t.Setenv("APP_ENV", "production")
		t.Setenv("PORT", "9090")
		t.Setenv("STATUS_CACHE_TTL", "1m")
		t.Setenv("CORS_ORIGINS", "https://network.lcp.example, ")

		cfg, err := Load()
		require.NoError(t, err)

		assert.True(t, cfg.IsProduction())
		assert.True(t, cfg.UsePostgrest())
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "9090", cfg.App.Port)
		assert.Equal(t, time.Minute, cfg.Cache.StatusTTL)
		assert.Equal(t, []string{"https://network.lcp.example"}, cfg.HTTP.CORSOrigins)
	})

	t.Run("requires a storage backend", func(t *testing.T) {
		t.Setenv("SUPABASE_JWT_SECRET", "secret")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("SUPABASE_URL", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("requires the jwt secret", func(t *testing.T) {
		t.Setenv("SUPABASE_JWT_SECRET", "")
		t.Setenv("DATABASE_URL", "postgres://localhost/lcp")

		_, err := Load()
		assert.ErrorContains(t, err, "SUPABASE_JWT_SECRET")
	})
}
