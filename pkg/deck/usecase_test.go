package deck

import (
	"context"
	"errors"
	"os"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	decks   map[uuid.UUID]Deck
	failErr error
}

func newMemRepo() *memRepo { return &memRepo{decks: map[uuid.UUID]Deck{}} }

func (r *memRepo) Create(_ context.Context, d Deck) error {
	if r.failErr != nil {
		return r.failErr
	}
	r.decks[d.ID] = d
	return nil
}

func (r *memRepo) GetForOwner(_ context.Context, ownerID, id uuid.UUID) (Deck, error) {
	d, ok := r.decks[id]
	if !ok || d.OwnerID != ownerID {
		return Deck{}, ErrNotFound
	}
	return d, nil
}

func (r *memRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, _, _ int) ([]Deck, error) {
	var out []Deck
	for _, d := range r.decks {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func TestUpload(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, t.TempDir())
	owner := uuid.New()

	d, err := svc.Upload(context.Background(), owner, "../lecture 1.PPTX", []byte("zip bytes"))
	require.NoError(t, err)
	assert.Equal(t, owner, d.OwnerID)
	assert.Equal(t, "lecture 1.PPTX", d.Filename)
	assert.Equal(t, int64(9), d.Size)
	assert.Equal(t, SupportedExtensions[".pptx"], d.ContentType)

	stored, err := os.ReadFile(d.StoragePath)
	require.NoError(t, err)
	assert.Equal(t, "zip bytes", string(stored))

	got, err := repo.GetForOwner(context.Background(), owner, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.StoragePath, got.StoragePath)

	_, err = repo.GetForOwner(context.Background(), uuid.New(), d.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpload_Rejects(t *testing.T) {
	svc := NewService(newMemRepo(), t.TempDir())

	_, err := svc.Upload(context.Background(), uuid.New(), "notes.docx", []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = svc.Upload(context.Background(), uuid.New(), "slides.pdf", nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestUpload_RemovesFileWhenMetadataFails(t *testing.T) {
	repo := newMemRepo()
	repo.failErr = errors.New("db down")
	dir := t.TempDir()

	_, err := NewService(repo, dir).Upload(context.Background(), uuid.New(), "a.pdf", []byte("%PDF"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
