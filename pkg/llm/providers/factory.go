package providers

import (
	"context"
	"fmt"

	"github.com/artem13815/tutor/pkg/llm"
	"github.com/artem13815/tutor/pkg/llm/gemini"
	"github.com/artem13815/tutor/pkg/llm/openai"
	"github.com/artem13815/tutor/pkg/log"
)

// Config carries the settings of every backend that can be bound to a role.
type Config struct {
	OpenAI openai.Options
	Gemini gemini.Options
}

// New creates the backend registered under name.
func New(ctx context.Context, name string, cfg Config) (llm.Provider, error) {
	switch name {
	case "openai":
		log.FromCtx(ctx).Info().Str("provider", name).Str("model", cfg.OpenAI.Model).Msg("llm provider configured")
		return openai.New(cfg.OpenAI), nil
	case "gemini":
		log.FromCtx(ctx).Info().Str("provider", name).Str("model", cfg.Gemini.Model).Msg("llm provider configured")
		return gemini.New(cfg.Gemini), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", name)
	}
}

// NewPair builds the primary and fallback backends. They may name the same backend.
func NewPair(ctx context.Context, primary, fallback string, cfg Config) (llm.Provider, llm.Provider, error) {
	p, err := New(ctx, primary, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("primary: %w", err)
	}
	f, err := New(ctx, fallback, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("fallback: %w", err)
	}
	return p, f, nil
}
