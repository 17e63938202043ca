package repository

import (
	"context"
	"time"

	"pnsMembership/internal/models"

	"github.com/jmoiron/sqlx"
)

// MemberFilter bounds a member listing by creation time; nil means open.
type MemberFilter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	CreateMany(ctx context.Context, members []*models.Member) error
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	List(ctx context.Context, filter MemberFilter) ([]models.Member, error)
	UpdateStatus(ctx context.Context, id int64, status models.MemberStatus) (*models.Member, error)
	UpdatePhoto(ctx context.Context, id int64, url string) error
	DeleteWithPosts(ctx context.Context, id int64) error
}

type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	Upsert(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id int64) (*models.Staff, error)
	GetByEmail(ctx context.Context, email string) (*models.Staff, error)
	List(ctx context.Context) ([]models.Staff, error)
	Update(ctx context.Context, staff *models.Staff) error
	Delete(ctx context.Context, id int64) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
}

type PreviewRepository interface {
	Create(ctx context.Context, fileURL string) (*models.Preview, error)
	Latest(ctx context.Context) (*models.Preview, error)
}

type StatsRepository interface {
	MemberCounts(ctx context.Context) (models.MemberStats, error)
	StaffCount(ctx context.Context) (int, error)
	PostCounts(ctx context.Context) (models.PostStats, error)
}

type Repository struct {
	Member  MemberRepository
	Staff   StaffRepository
	Post    PostRepository
	Preview PreviewRepository
	Stats   StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Member:  NewMemberRepository(db),
		Staff:   NewStaffRepository(db),
		Post:    NewPostRepository(db),
		Preview: NewPreviewRepository(db),
		Stats:   NewStatsRepository(db),
	}
}
