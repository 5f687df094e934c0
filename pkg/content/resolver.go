package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/tutor/pkg/log"
)

// Resolver turns an optional slide reference into supporting content for one intent.
type Resolver interface {
	Resolve(ctx context.Context, intent Intent, ref *Reference) (Resolved, error)
}

type resolver struct {
	extractor Extractor
}

// NewResolver returns the default Resolver backed by an extraction collaborator.
func NewResolver(extractor Extractor) Resolver {
	return &resolver{extractor: extractor}
}

// Resolve never fails for IntentAsk: extraction problems degrade to empty content.
// For IntentExplainSlide a missing deck or slide, and a slide with nothing in it, are ErrNotFound.
func (r *resolver) Resolve(ctx context.Context, intent Intent, ref *Reference) (Resolved, error) {
	if ref == nil {
		return Resolved{}, nil
	}
	logger := log.FromCtx(ctx).With().
		Str("deck_id", ref.DeckID.String()).
		Int("slide", ref.Slide).
		Str("intent", string(intent)).
		Logger()

	if intent == IntentExplainSlide {
		if !ref.HasSlide() {
			return Resolved{}, fmt.Errorf("%w: slide number is required", ErrNotFound)
		}
		res, err := r.slide(ctx, *ref)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return Resolved{}, err
			}
			logger.Warn().Err(err).Msg("slide extraction failed")
			return Resolved{}, fmt.Errorf("%w: slide content unavailable", ErrNotFound)
		}
		if res.Kind() == KindNone {
			return Resolved{}, ErrEmptySlide
		}
		return res, nil
	}

	var (
		res Resolved
		err error
	)
	if ref.HasSlide() {
		res, err = r.slide(ctx, *ref)
		if err == nil && res.HasText() {
			res.Text = FormatSlides([]SlideText{{Number: ref.Slide, Text: res.Text}})
		}
	} else {
		res, err = r.deck(ctx, *ref)
	}
	if err != nil {
		logger.Warn().Err(err).Msg("continuing without slide content")
		return Resolved{}, nil
	}
	logger.Debug().Str("kind", res.Kind().String()).Msg("slide content resolved")
	return res, nil
}

func (r *resolver) deck(ctx context.Context, ref Reference) (Resolved, error) {
	slides, err := r.extractor.ExtractText(ctx, ref)
	if err != nil {
		return Resolved{}, fmt.Errorf("extract text: %w", err)
	}
	return NewResolved(FormatSlides(slides), nil), nil
}

func (r *resolver) slide(ctx context.Context, ref Reference) (Resolved, error) {
	slides, err := r.extractor.ExtractText(ctx, ref)
	if err != nil {
		return Resolved{}, fmt.Errorf("extract text: %w", err)
	}
	var (
		text  string
		found bool
	)
	for _, s := range slides {
		if s.Number == ref.Slide {
			text, found = strings.TrimSpace(s.Text), true
			break
		}
	}
	if !found {
		return Resolved{}, fmt.Errorf("%w: slide %d", ErrNotFound, ref.Slide)
	}

	img, err := r.image(ctx, ref)
	if err != nil {
		// the text alone is still usable
		log.FromCtx(ctx).Warn().Err(err).Int("slide", ref.Slide).Msg("slide image unavailable")
		img = nil
	}
	return NewResolved(text, img), nil
}

func (r *resolver) image(ctx context.Context, ref Reference) (*Image, error) {
	refs, err := r.extractor.ExtractImages(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("extract images: %w", err)
	}
	has := false
	for _, ir := range refs {
		if ir.Number == ref.Slide {
			has = true
			break
		}
	}
	if !has {
		return nil, nil
	}
	img, ok, err := r.extractor.ExtractImageForSlide(ctx, ref, ref.Slide)
	if err != nil {
		return nil, fmt.Errorf("extract image: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &img, nil
}
