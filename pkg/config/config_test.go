package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PRIMARY_MODEL_PROVIDER", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("OPENAI_APP_TITLE", "")
	t.Setenv("OPENAI_REFERER", "")

	cfg := Load()
	assert.Equal(t, "openai", cfg.PrimaryProvider)
	assert.Equal(t, "gemini", cfg.FallbackProvider)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "AI Tutor", cfg.OpenAIAppTitle)
	assert.Empty(t, cfg.OpenAIReferer)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PRIMARY_MODEL_PROVIDER", "Gemini")
	t.Setenv("PROVIDER_TIMEOUT", "15")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DEBUG", "true")
	t.Setenv("OPENAI_APP_TITLE", "Lecture Helper")
	t.Setenv("OPENAI_REFERER", "https://tutor.example.com")

	cfg := Load()
	assert.Equal(t, "gemini", cfg.PrimaryProvider)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 30*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "Lecture Helper", cfg.OpenAIAppTitle)
	assert.Equal(t, "https://tutor.example.com", cfg.OpenAIReferer)
}

func TestGetEnvDuration_Invalid(t *testing.T) {
	t.Setenv("X_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getEnvDuration("X_TIMEOUT", time.Minute))
	t.Setenv("X_TIMEOUT", "-5s")
	assert.Equal(t, time.Minute, getEnvDuration("X_TIMEOUT", time.Minute))
}
