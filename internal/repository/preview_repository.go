package repository

import (
	"context"

	"pnsMembership/internal/models"

	"github.com/jmoiron/sqlx"
)

type previewRepository struct {
	db *sqlx.DB
}

func NewPreviewRepository(db *sqlx.DB) PreviewRepository {
	return &previewRepository{db: db}
}

func (r *previewRepository) Create(ctx context.Context, fileURL string) (*models.Preview, error) {
	var preview models.Preview

	query := `INSERT INTO preview_documents (file_url) VALUES ($1) RETURNING id, file_url, created_at`
	if err := r.db.GetContext(ctx, &preview, query, fileURL); err != nil {
		return nil, wrapError("create preview", err)
	}

	return &preview, nil
}

// Latest returns the most recently uploaded preview or ErrNotFound.
func (r *previewRepository) Latest(ctx context.Context) (*models.Preview, error) {
	var preview models.Preview

	query := `SELECT id, file_url, created_at FROM preview_documents ORDER BY created_at DESC, id DESC LIMIT 1`
	if err := r.db.GetContext(ctx, &preview, query); err != nil {
		return nil, wrapError("latest preview", err)
	}

	return &preview, nil
}
