package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/tutor/pkg/log"
)

// SupportedExtensions lists the file types a deck can be uploaded as.
var SupportedExtensions = map[string]string{
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".pdf":  "application/pdf",
}

// UseCase covers deck upload and listing.
type UseCase interface {
	Upload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (Deck, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Deck, error)
}

type service struct {
	repo    Repository
	baseDir string
}

func NewService(repo Repository, baseDir string) UseCase {
	return &service{repo: repo, baseDir: baseDir}
}

func (s *service) Upload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte) (Deck, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := SupportedExtensions[ext]
	if !ok {
		return Deck{}, ErrUnsupportedFormat
	}
	if len(data) == 0 {
		return Deck{}, ErrEmptyFile
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return Deck{}, fmt.Errorf("prepare storage: %w", err)
	}

	d := Deck{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Size:        int64(len(data)),
		UploadedAt:  time.Now().UTC(),
	}
	d.StoragePath = filepath.Join(s.baseDir, d.ID.String()+ext)
	if err := os.WriteFile(d.StoragePath, data, 0o644); err != nil {
		return Deck{}, fmt.Errorf("store file: %w", err)
	}
	if err := s.repo.Create(ctx, d); err != nil {
		_ = os.Remove(d.StoragePath)
		return Deck{}, fmt.Errorf("save metadata: %w", err)
	}
	log.FromCtx(ctx).Info().Str("deck_id", d.ID.String()).Str("filename", d.Filename).Int64("size", d.Size).Msg("deck uploaded")
	return d, nil
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Deck, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}
