package repository

import (
	"context"

	"pnsMembership/internal/models"

	"github.com/jmoiron/sqlx"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) MemberCounts(ctx context.Context) (models.MemberStats, error) {
	var stats models.MemberStats

	err := r.db.GetContext(ctx, &stats, `
		SELECT COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'APPROVED') AS active,
			COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
			COUNT(*) FILTER (WHERE status = 'REJECTED') AS inactive
		FROM members`)
	if err != nil {
		return models.MemberStats{}, wrapError("count members", err)
	}

	return stats, nil
}

func (r *statsRepository) StaffCount(ctx context.Context) (int, error) {
	var count int

	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM staff`); err != nil {
		return 0, wrapError("count staff", err)
	}

	return count, nil
}

func (r *statsRepository) PostCounts(ctx context.Context) (models.PostStats, error) {
	var stats models.PostStats

	err := r.db.GetContext(ctx, &stats, `
		SELECT COUNT(*) AS total,
			COUNT(*) FILTER (WHERE published) AS published
		FROM posts`)
	if err != nil {
		return models.PostStats{}, wrapError("count posts", err)
	}

	return stats, nil
}
