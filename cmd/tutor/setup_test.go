package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/tutor/pkg/config"
)

func TestProviderConfig(t *testing.T) {
	cfg := config.Config{
		OpenAIAPIKey:    "sk-or",
		OpenAIBaseURL:   "https://openrouter.ai/api/v1",
		OpenAIModel:     "openai/gpt-4o-mini",
		OpenAIAppTitle:  "AI Tutor",
		OpenAIReferer:   "https://tutor.example.com",
		GeminiAPIKey:    "g-key",
		ProviderTimeout: 20 * time.Second,
	}

	pc := providerConfig(cfg)
	assert.Equal(t, "AI Tutor", pc.OpenAI.AppTitle)
	assert.Equal(t, "https://tutor.example.com", pc.OpenAI.Referer)
	assert.Equal(t, "https://openrouter.ai/api/v1", pc.OpenAI.BaseURL)
	assert.Equal(t, 20*time.Second, pc.OpenAI.Timeout)
	assert.Equal(t, "g-key", pc.Gemini.APIKey)
	assert.Equal(t, 20*time.Second, pc.Gemini.Timeout)
}
