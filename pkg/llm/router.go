package llm

import (
	"context"
	"strings"
	"time"

	"github.com/artem13815/tutor/pkg/content"
	"github.com/artem13815/tutor/pkg/log"
)

// State is a router state.
type State string

const (
	StateSelectMode  State = "SELECT_MODE"
	StateTryPrimary  State = "TRY_PRIMARY"
	StateTryFallback State = "TRY_FALLBACK"
	StateDone        State = "DONE"
)

const (
	rolePrimary  = "primary"
	roleFallback = "fallback"
)

// Step is one recorded transition. Err is set when a provider attempt failed.
type Step struct {
	State State
	Mode  ModeKind
	Err   error
}

// Outcome is the terminal result of one routing run.
type Outcome struct {
	Answer      string
	Label       string
	Mode        ModeKind
	PrimaryErr  error
	FallbackErr error
	Steps       []Step
}

func (o Outcome) Success() bool { return o.Label != "" }

// Label names the role and mode that produced an answer, e.g. "primary-text"
// or "fallback-multimodal-fallback".
func Label(role string, mode ModeKind) string {
	l := role + "-" + string(mode)
	if role == roleFallback {
		l += "-fallback"
	}
	return l
}

// SelectMode picks multimodal only when an image is present and either there is
// no usable text or the intent is to explain the slide itself.
func SelectMode(intent content.Intent, c content.Resolved) Mode {
	if c.HasImage() && (!c.HasText() || intent == content.IntentExplainSlide) {
		return MultimodalMode(c.Image.Data, c.Image.MimeType)
	}
	return TextMode()
}

// Router runs the primary/fallback state machine. It holds no per-request state.
type Router struct {
	primary  Provider
	fallback Provider
	timeout  time.Duration
}

// NewRouter binds the two providers. timeout bounds each provider call; zero disables it.
func NewRouter(primary, fallback Provider, timeout time.Duration) *Router {
	return &Router{primary: primary, fallback: fallback, timeout: timeout}
}

// Route makes at most two provider calls, in the mode chosen once up front.
func (r *Router) Route(ctx context.Context, intent content.Intent, prompt string, c content.Resolved) Outcome {
	logger := log.FromCtx(ctx)
	var out Outcome

	mode := SelectMode(intent, c)
	out.Mode = mode.Kind
	out.Steps = append(out.Steps, Step{State: StateSelectMode, Mode: mode.Kind})
	logger.Debug().Str("state", string(StateSelectMode)).Str("mode", string(mode.Kind)).Msg("router")

	answer, err := r.invoke(ctx, r.primary, prompt, mode)
	out.Steps = append(out.Steps, Step{State: StateTryPrimary, Mode: mode.Kind, Err: err})
	if err == nil {
		return r.done(ctx, out, answer, Label(rolePrimary, mode.Kind))
	}
	out.PrimaryErr = err
	logger.Warn().Err(err).Str("provider", r.primary.Name()).Str("mode", string(mode.Kind)).
		Msg("primary provider failed, trying fallback")

	answer, err = r.invoke(ctx, r.fallback, prompt, mode)
	out.Steps = append(out.Steps, Step{State: StateTryFallback, Mode: mode.Kind, Err: err})
	if err == nil {
		return r.done(ctx, out, answer, Label(roleFallback, mode.Kind))
	}
	out.FallbackErr = err
	logger.Error().Err(err).Str("provider", r.fallback.Name()).Str("mode", string(mode.Kind)).
		Msg("fallback provider failed")

	out.Steps = append(out.Steps, Step{State: StateDone, Mode: mode.Kind})
	return out
}

func (r *Router) done(ctx context.Context, out Outcome, answer, label string) Outcome {
	out.Answer = answer
	out.Label = label
	out.Steps = append(out.Steps, Step{State: StateDone, Mode: out.Mode})
	log.FromCtx(ctx).Info().Str("provider", label).Int("answer_len", len(answer)).Msg("answer generated")
	return out
}

func (r *Router) invoke(ctx context.Context, p Provider, prompt string, mode Mode) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	answer, err := p.Invoke(ctx, prompt, mode)
	if err != nil {
		return "", Classify(p.Name(), err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", InvalidResponse(p.Name(), "empty answer", nil)
	}
	return answer, nil
}
