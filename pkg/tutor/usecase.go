package tutor

import (
	"context"
	"time"

	"github.com/artem13815/tutor/pkg/cache"
	"github.com/artem13815/tutor/pkg/content"
	"github.com/artem13815/tutor/pkg/llm"
	"github.com/artem13815/tutor/pkg/log"
	"github.com/artem13815/tutor/pkg/prompt"
)

// UseCase answers student questions and explains slides.
type UseCase interface {
	// Ask answers question, using the referenced deck or slide as supporting material when it can be read.
	Ask(ctx context.Context, question string, ref *content.Reference) (AnswerResult, error)
	// ExplainSlide explains one slide; ref must name a deck and a slide.
	ExplainSlide(ctx context.Context, ref content.Reference) (AnswerResult, error)
}

// Config tunes the pipeline. Zero values fall back to the defaults.
type Config struct {
	CacheTTL        time.Duration
	ProviderTimeout time.Duration
}

type service struct {
	cache    cache.Store
	resolver content.Resolver
	router   *llm.Router
	ttl      time.Duration
}

// NewService wires the answer pipeline. primary is always tried first, fallback at most once after it.
func NewService(store cache.Store, resolver content.Resolver, primary, fallback llm.Provider, cfg Config) UseCase {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = cache.DefaultTTL
	}
	return &service{
		cache:    store,
		resolver: resolver,
		router:   llm.NewRouter(primary, fallback, cfg.ProviderTimeout),
		ttl:      cfg.CacheTTL,
	}
}

func (s *service) Ask(ctx context.Context, question string, ref *content.Reference) (AnswerResult, error) {
	return s.answer(ctx, content.IntentAsk, question, ref)
}

func (s *service) ExplainSlide(ctx context.Context, ref content.Reference) (AnswerResult, error) {
	if !ref.HasSlide() {
		return AnswerResult{}, validationError("slide number must be positive")
	}
	return s.answer(ctx, content.IntentExplainSlide, ExplainInstruction(ref.Slide), &ref)
}

func (s *service) answer(ctx context.Context, intent content.Intent, question string, ref *content.Reference) (AnswerResult, error) {
	question, err := normalizeQuestion(question)
	if err != nil {
		return AnswerResult{}, err
	}
	key := CacheKey(intent, question, ref)
	logger := log.FromCtx(ctx).With().Str("intent", string(intent)).Str("cache_key", key).Logger()

	if cached, ok := s.lookup(ctx, key); ok {
		logger.Info().Msg("cache hit")
		return AnswerResult{Answer: cached, Cached: true, Provider: ProviderCache}, nil
	}

	resolved, err := s.resolver.Resolve(ctx, intent, ref)
	switch {
	case err != nil && intent == content.IntentAsk:
		// a question is still answerable without its slides
		logger.Warn().Err(err).Msg("content resolution failed, answering without slides")
		resolved = content.Resolved{}
	case err != nil:
		return AnswerResult{}, err
	}
	p := prompt.Build(intent, question, resolved)

	logger.Info().Str("content", resolved.Kind().String()).Msg("cache miss, asking providers")
	out := s.router.Route(ctx, intent, p, resolved)
	if !out.Success() {
		return AnswerResult{}, &AggregateProviderFailure{Primary: out.PrimaryErr, Fallback: out.FallbackErr}
	}

	if err := s.cache.Set(ctx, key, out.Answer, s.ttl); err != nil {
		logger.Warn().Err(err).Msg("cache write failed")
	}
	return AnswerResult{Answer: out.Answer, Cached: false, Provider: out.Label}, nil
}

// lookup treats a failing cache backend as a miss.
func (s *service) lookup(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("cache read failed")
		return "", false
	}
	return v, ok
}
