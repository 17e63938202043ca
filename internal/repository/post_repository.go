package repository

import (
	"context"
	"fmt"
	"time"

	"pnsMembership/internal/models"

	"github.com/jmoiron/sqlx"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, title, content, cover_image, published, author_id, staff_id, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	now := time.Now().UTC()
	post.CreatedAt, post.UpdatedAt = now, now

	query, args, err := r.db.BindNamed(`
		INSERT INTO posts (title, content, cover_image, published, author_id, staff_id, created_at, updated_at)
		VALUES (:title, :content, :cover_image, :published, :author_id, :staff_id, :created_at, :updated_at)
		RETURNING id`, post)
	if err != nil {
		return fmt.Errorf("create post: bind: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&post.ID); err != nil {
		return wrapError("create post", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post

	if err := r.db.GetContext(ctx, &post, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id); err != nil {
		return nil, wrapError("get post", err)
	}

	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}

	if err := r.db.SelectContext(ctx, &posts, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC`); err != nil {
		return nil, wrapError("list posts", err)
	}

	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, `
		UPDATE posts
		SET title = :title, content = :content, cover_image = :cover_image, published = :published, updated_at = :updated_at
		WHERE id = :id`, post)
	if err != nil {
		return wrapError("update post", err)
	}

	return checkAffected("update post", result)
}

func (r *postRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return wrapError("delete post", err)
	}

	return checkAffected("delete post", result)
}
