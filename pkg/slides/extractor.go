// Package slides reads slide text and images out of stored pptx and pdf decks.
package slides

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/artem13815/tutor/pkg/content"
	"github.com/artem13815/tutor/pkg/deck"
)

// Locator maps a deck reference to a file on disk, enforcing ownership.
type Locator interface {
	Locate(ctx context.Context, ref content.Reference) (string, error)
}

// RepositoryLocator resolves decks through deck metadata scoped to the owner.
type RepositoryLocator struct {
	Repo deck.Repository
}

func (l RepositoryLocator) Locate(ctx context.Context, ref content.Reference) (string, error) {
	d, err := l.Repo.GetForOwner(ctx, ref.OwnerID, ref.DeckID)
	if errors.Is(err, deck.ErrNotFound) {
		return "", content.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return d.StoragePath, nil
}

// FileLocator serves a single local file for every reference.
type FileLocator string

func (l FileLocator) Locate(context.Context, content.Reference) (string, error) {
	return string(l), nil
}

type document interface {
	Texts() ([]content.SlideText, error)
	Images() ([]content.SlideImageRef, error)
	Image(slide int) (content.Image, bool, error)
}

// Extractor implements content.Extractor over files found by a Locator.
type Extractor struct {
	locator Locator
}

func NewExtractor(l Locator) *Extractor {
	return &Extractor{locator: l}
}

func (e *Extractor) ExtractText(ctx context.Context, ref content.Reference) ([]content.SlideText, error) {
	var out []content.SlideText
	err := e.with(ctx, ref, func(d document) error {
		var err error
		out, err = d.Texts()
		return err
	})
	return out, err
}

func (e *Extractor) ExtractImages(ctx context.Context, ref content.Reference) ([]content.SlideImageRef, error) {
	var out []content.SlideImageRef
	err := e.with(ctx, ref, func(d document) error {
		var err error
		out, err = d.Images()
		return err
	})
	return out, err
}

func (e *Extractor) ExtractImageForSlide(ctx context.Context, ref content.Reference, slide int) (content.Image, bool, error) {
	var (
		img content.Image
		ok  bool
	)
	err := e.with(ctx, ref, func(d document) error {
		var err error
		img, ok, err = d.Image(slide)
		return err
	})
	return img, ok, err
}

func (e *Extractor) with(ctx context.Context, ref content.Reference, fn func(document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := e.locator.Locate(ctx, ref)
	if err != nil {
		return err
	}
	f, err := os.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		return content.ErrNotFound
	}
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return err
	}

	var d document
	switch ext := strings.ToLower(filepath.Ext(p)); ext {
	case ".pptx":
		d, err = openPPTX(f, st.Size())
	case ".pdf":
		d, err = openPDF(f, st.Size())
	default:
		err = fmt.Errorf("%w: %s", deck.ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return err
	}
	return fn(d)
}
