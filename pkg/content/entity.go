package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Intent selects the prompt template and the degradation policy of a request.
type Intent string

const (
	IntentAsk          Intent = "ask"
	IntentExplainSlide Intent = "explain_slide"
)

var (
	// ErrNotFound is returned when a deck or slide is absent or not accessible to the requester.
	ErrNotFound = errors.New("slide deck or slide not found")
	// ErrEmptySlide marks a slide that exists but carries neither text nor an image.
	ErrEmptySlide = fmt.Errorf("%w: slide has no text and no image", ErrNotFound)
)

// Reference points at a deck, and optionally at one slide of it (Slide > 0).
type Reference struct {
	OwnerID uuid.UUID
	DeckID  uuid.UUID
	Slide   int
}

// HasSlide reports whether the reference targets a single slide.
func (r Reference) HasSlide() bool { return r.Slide > 0 }

// Image is raw image data together with its MIME type.
type Image struct {
	Data     []byte
	MimeType string
}

var knownImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/bmp":  {},
	"image/webp": {},
	"image/tiff": {},
}

// IsKnownImageType reports whether mime is one of the image types providers accept.
func IsKnownImageType(mime string) bool {
	_, ok := knownImageTypes[strings.ToLower(strings.TrimSpace(mime))]
	return ok
}

// Valid reports whether the image can be sent to a provider.
func (i *Image) Valid() bool {
	return i != nil && len(i.Data) > 0 && IsKnownImageType(i.MimeType)
}

// Kind classifies resolved content.
type Kind int

const (
	KindNone Kind = iota
	KindTextOnly
	KindImageOnly
	KindTextAndImage
)

func (k Kind) String() string {
	switch k {
	case KindTextOnly:
		return "text"
	case KindImageOnly:
		return "image"
	case KindTextAndImage:
		return "text+image"
	default:
		return "none"
	}
}

// Resolved is supporting material for one request.
// Text is kept only when non-blank and Image only when valid, so Kind is always consistent.
type Resolved struct {
	Text  string
	Image *Image
}

// NewResolved normalises text and image into a consistent Resolved value.
func NewResolved(text string, img *Image) Resolved {
	var r Resolved
	if strings.TrimSpace(text) != "" {
		r.Text = text
	}
	if img.Valid() {
		r.Image = img
	}
	return r
}

func (r Resolved) HasText() bool  { return strings.TrimSpace(r.Text) != "" }
func (r Resolved) HasImage() bool { return r.Image.Valid() }

func (r Resolved) Kind() Kind {
	switch {
	case r.HasText() && r.HasImage():
		return KindTextAndImage
	case r.HasText():
		return KindTextOnly
	case r.HasImage():
		return KindImageOnly
	default:
		return KindNone
	}
}

// SlideText is the extracted text of one slide. Text may be empty.
type SlideText struct {
	Number int
	Text   string
}

// SlideImageRef names an image embedded in a slide.
type SlideImageRef struct {
	Number int
	Name   string
}

// Extractor pulls per-slide material out of a stored deck.
// Access control happens inside the implementation; an inaccessible deck is ErrNotFound.
type Extractor interface {
	// ExtractText returns every slide of the deck in order, including slides without text.
	ExtractText(ctx context.Context, deck Reference) ([]SlideText, error)
	ExtractImages(ctx context.Context, deck Reference) ([]SlideImageRef, error)
	ExtractImageForSlide(ctx context.Context, deck Reference, slide int) (Image, bool, error)
}
