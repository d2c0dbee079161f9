package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajgarments/storefront/internal/config"
)

func TestNew(t *testing.T) {
	type Config struct {
		Log       config.Log
		HTTP      config.HTTP
		AI        config.AI
		Recommend config.Recommend
	}

	t.Run("Should apply defaults", func(t *testing.T) {
		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
		assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
		assert.Equal(t, uint32(8000), cfg.HTTP.Port)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CORSAllowedOrigins)
		assert.Equal(t, time.Minute, cfg.HTTP.ChatRateWindow)
		assert.Equal(t, "gpt-4o", cfg.AI.Model)
		assert.False(t, cfg.AI.Enabled())
		assert.Equal(t, 4, cfg.Recommend.DefaultLimit)
		assert.Equal(t, 8, cfg.Recommend.HybridLimit)
	})

	t.Run("Should read environment", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("HTTP_PORT", "9090")
		t.Setenv("HTTP_CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("RECOMMEND_HYBRID_LIMIT", "12")

		cfg, err := config.New[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
		assert.Equal(t, uint32(9090), cfg.HTTP.Port)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
		assert.True(t, cfg.AI.Enabled())
		assert.Equal(t, 12, cfg.Recommend.HybridLimit)
	})

	t.Run("Should reject unknown log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")

		_, err := config.New[Config]()
		assert.Error(t, err)
	})

	t.Run("Should require redis address", func(t *testing.T) {
		_, err := config.New[struct{ Redis config.Redis }]()
		assert.Error(t, err)
	})
}

func TestLogFormatMarshalText(t *testing.T) {
	b, err := config.LogFormatText.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "TEXT", string(b))
}
