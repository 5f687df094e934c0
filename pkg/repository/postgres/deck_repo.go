package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/tutor/pkg/deck"
)

// DeckRepository stores slide deck metadata. Files themselves live on disk.
type DeckRepository struct {
	pool *pgxpool.Pool
}

func NewDeckRepository(pool *pgxpool.Pool) *DeckRepository {
	return &DeckRepository{pool: pool}
}

func (r *DeckRepository) Create(ctx context.Context, d deck.Deck) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO slide_decks (id, owner_id, filename, content_type, size_bytes, storage_path, uploaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, d.ID, d.OwnerID, d.Filename, d.ContentType, d.Size, d.StoragePath, d.UploadedAt)
	return err
}

func (r *DeckRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (deck.Deck, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, filename, content_type, size_bytes, storage_path, uploaded_at
FROM slide_decks WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	d, err := scanDeck(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return deck.Deck{}, deck.ErrNotFound
	}
	return d, err
}

func (r *DeckRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]deck.Deck, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, filename, content_type, size_bytes, storage_path, uploaded_at
FROM slide_decks WHERE owner_id = $1
ORDER BY uploaded_at DESC
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]deck.Deck, 0, limit)
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDeck(row pgx.Row) (deck.Deck, error) {
	var d deck.Deck
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Filename, &d.ContentType, &d.Size, &d.StoragePath, &d.UploadedAt); err != nil {
		return deck.Deck{}, err
	}
	d.UploadedAt = d.UploadedAt.UTC()
	return d, nil
}
