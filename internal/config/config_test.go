package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "truthguard.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "https://en.wikipedia.org/api/rest_v1", cfg.Wikipedia.BaseURL)
	assert.Equal(t, "https://api.duckduckgo.com", cfg.DuckDuckGo.BaseURL)
	assert.Equal(t, "https://newsapi.org/v2", cfg.NewsAPI.BaseURL)
	assert.Empty(t, cfg.NewsAPI.Key)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRUTHGUARD_STORE_DRIVER", "postgres")
	t.Setenv("TRUTHGUARD_STORE_DATABASE_URL", "postgres://localhost/truthguard")
	t.Setenv("TRUTHGUARD_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/truthguard", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "chatty", Format: "json"})
	assert.Error(t, err)
}
