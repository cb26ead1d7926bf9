package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "anthropic", cfg.OracleProvider)
	assert.Equal(t, 60*time.Second, cfg.OracleTimeout)
	assert.Equal(t, 5, cfg.PaperLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis.internal:6379")
	t.Setenv("ORACLE_PROVIDER", "openai")
	t.Setenv("ORACLE_TIMEOUT", "90s")
	t.Setenv("PAPER_LIMIT", "3")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, "redis.internal:6379", cfg.RedisAddr)
	assert.Equal(t, "openai", cfg.OracleProvider)
	assert.Equal(t, 90*time.Second, cfg.OracleTimeout)
	assert.Equal(t, 3, cfg.PaperLimit)
}

func TestLoadConfig_FileOverlayThenEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storeBackend: redis\ngraphKey: research\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("STORE_BACKEND", "memory")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "research", cfg.GraphKey)
}

func TestLoadConfig_Rejections(t *testing.T) {
	t.Run("unknown store backend", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "postgres")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("unknown oracle provider", func(t *testing.T) {
		t.Setenv("ORACLE_PROVIDER", "gemini")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("missing anthropic key in production", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
