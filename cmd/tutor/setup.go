package main

import (
	"context"
	"fmt"

	"github.com/artem13815/tutor/pkg/cache"
	"github.com/artem13815/tutor/pkg/config"
	"github.com/artem13815/tutor/pkg/content"
	"github.com/artem13815/tutor/pkg/llm/gemini"
	"github.com/artem13815/tutor/pkg/llm/openai"
	"github.com/artem13815/tutor/pkg/llm/providers"
	"github.com/artem13815/tutor/pkg/tutor"
)

func providerConfig(cfg config.Config) providers.Config {
	return providers.Config{
		OpenAI: openai.Options{
			APIKey:   cfg.OpenAIAPIKey,
			BaseURL:  cfg.OpenAIBaseURL,
			Model:    cfg.OpenAIModel,
			AppTitle: cfg.OpenAIAppTitle,
			Referer:  cfg.OpenAIReferer,
			Timeout:  cfg.ProviderTimeout,
		},
		Gemini: gemini.Options{
			APIKey:  cfg.GeminiAPIKey,
			BaseURL: cfg.GeminiBaseURL,
			Model:   cfg.GeminiModel,
			Timeout: cfg.ProviderTimeout,
		},
	}
}

// newTutor builds the answer pipeline on top of the given cache and extractor.
func newTutor(ctx context.Context, cfg config.Config, store cache.Store, extractor content.Extractor) (tutor.UseCase, error) {
	primary, fallback, err := providers.NewPair(ctx, cfg.PrimaryProvider, cfg.FallbackProvider, providerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("configure providers: %w", err)
	}
	return tutor.NewService(store, content.NewResolver(extractor), primary, fallback, tutor.Config{
		CacheTTL:        cfg.CacheTTL,
		ProviderTimeout: cfg.ProviderTimeout,
	}), nil
}
