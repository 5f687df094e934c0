package tutor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artem13815/tutor/pkg/content"
)

// AnswerResult is what a caller gets back for one question.
type AnswerResult struct {
	Answer   string `json:"answer"`
	Cached   bool   `json:"cached"`
	Provider string `json:"provider"`
}

// ProviderCache labels answers served from the cache.
const ProviderCache = "cache"

var (
	// ErrValidation is returned for malformed input such as a blank question.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound covers missing or inaccessible decks and slides, including empty slides.
	ErrNotFound = content.ErrNotFound
	// ErrEmptySlide is the ExplainSlide case of a slide with neither text nor image.
	ErrEmptySlide = content.ErrEmptySlide
)

// AggregateProviderFailure is returned when both the primary and the fallback provider failed.
type AggregateProviderFailure struct {
	Primary  error
	Fallback error
}

func (e *AggregateProviderFailure) Error() string {
	return fmt.Sprintf("all AI providers failed: primary: %v; fallback: %v", e.Primary, e.Fallback)
}

func (e *AggregateProviderFailure) Unwrap() []error {
	return []error{e.Primary, e.Fallback}
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// ExplainInstruction is the question text used for explaining slide n.
func ExplainInstruction(n int) string {
	return fmt.Sprintf("Explain slide %d", n)
}

func normalizeQuestion(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", validationError("question cannot be empty")
	}
	return q, nil
}
