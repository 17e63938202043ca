package service

import (
	"context"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
)

// MemberStats is the membership summary with the per-type breakdown the dashboard charts.
type MemberStats struct {
	models.MemberStats
	ByType map[string]int `json:"byType"`
}

type DashboardStats struct {
	MemberStats
	AdminUsers     int `json:"adminUsers"`
	PostsTotal     int `json:"postsTotal"`
	PostsPublished int `json:"postsPublished"`
	PostsDraft     int `json:"postsDraft"`
}

type StatsService interface {
	Members(ctx context.Context) (*MemberStats, error)
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) Members(ctx context.Context) (*MemberStats, error) {
	counts, err := s.statsRepo.MemberCounts(ctx)
	if err != nil {
		return nil, apperr.Server("Failed to load stats", err)
	}

	return &MemberStats{
		MemberStats: counts,
		ByType:      map[string]int{"standard": counts.Total},
	}, nil
}

func (s *statsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	members, err := s.Members(ctx)
	if err != nil {
		return nil, err
	}

	staff, err := s.statsRepo.StaffCount(ctx)
	if err != nil {
		return nil, apperr.Server("Failed to load stats", err)
	}

	posts, err := s.statsRepo.PostCounts(ctx)
	if err != nil {
		return nil, apperr.Server("Failed to load stats", err)
	}

	return &DashboardStats{
		MemberStats:    *members,
		AdminUsers:     staff,
		PostsTotal:     posts.Total,
		PostsPublished: posts.Published,
		PostsDraft:     posts.Total - posts.Published,
	}, nil
}
