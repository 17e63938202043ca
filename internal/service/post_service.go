package service

import (
	"context"
	"strings"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
)

const postFieldsRequired = "title and content are required"

type CreatePostRequest struct {
	Title     string
	Content   string
	CoverURL  string
	Published bool
}

// UpdatePostRequest changes only the non-nil fields.
type UpdatePostRequest struct {
	Title     *string
	Content   *string
	CoverURL  *string
	Published *bool
}

type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, staffID int64, req CreatePostRequest) (*models.Post, error)
	Update(ctx context.Context, id int64, req UpdatePostRequest) (*models.Post, error)
	Delete(ctx context.Context, id int64) error
}

type postService struct {
	postRepo repository.PostRepository
}

func NewPostService(postRepo repository.PostRepository) PostService {
	return &postService{postRepo: postRepo}
}

func (p *postService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := p.postRepo.List(ctx)
	if err != nil {
		return nil, apperr.Server("Failed to load posts", err)
	}
	return posts, nil
}

func (p *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Not found")
	}
	return post, nil
}

func (p *postService) Create(ctx context.Context, staffID int64, req CreatePostRequest) (*models.Post, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperr.Validation(postFieldsRequired)
	}

	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		CoverImage: optional(strings.TrimSpace(req.CoverURL)),
		Published:  req.Published,
	}
	if staffID > 0 {
		post.StaffID = &staffID
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, apperr.Server("Failed to create", err)
	}
	return post, nil
}

func (p *postService) Update(ctx context.Context, id int64, req UpdatePostRequest) (*models.Post, error) {
	if (req.Title != nil && strings.TrimSpace(*req.Title) == "") ||
		(req.Content != nil && strings.TrimSpace(*req.Content) == "") {
		return nil, apperr.Validation(postFieldsRequired)
	}

	post, err := p.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "Not found")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.CoverURL != nil {
		post.CoverImage = optional(strings.TrimSpace(*req.CoverURL))
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, lookupError(err, "Not found")
	}
	return post, nil
}

func (p *postService) Delete(ctx context.Context, id int64) error {
	if err := p.postRepo.Delete(ctx, id); err != nil {
		return lookupError(err, "Not found")
	}
	return nil
}
