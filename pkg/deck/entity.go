package deck

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("slide deck not found")
	ErrUnsupportedFormat = errors.New("unsupported file format: only pptx and pdf are allowed")
	ErrEmptyFile         = errors.New("empty file")
)

// Deck is an uploaded presentation owned by one user.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"-"`
	UploadedAt  time.Time `json:"uploadTime"`
}

// Repository persists deck metadata. Lookups are always scoped to an owner.
type Repository interface {
	Create(ctx context.Context, d Deck) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Deck, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Deck, error)
}
