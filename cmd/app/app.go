package app

import (
	"context"
	"fmt"

	"pnsMembership/internal/config"
	"pnsMembership/internal/database"
	"pnsMembership/internal/metrics"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/service"
	"pnsMembership/internal/session"
	"pnsMembership/internal/storage"

	"go.uber.org/zap"
)

// App holds every long-lived dependency of the server.
type App struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Sessions service.Sessions
	Metrics  *metrics.Registry
}

func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("init file storage: %w", err)
	}

	sessions := service.Sessions{
		Member: session.NewMemberManager(cfg),
		Staff:  session.NewStaffManager(cfg),
	}
	reg := metrics.NewRegistry()
	repo := repository.NewRepository(db.DB)

	return &App{
		DB:       db,
		Repo:     repo,
		Services: service.NewService(repo, cfg, store, sessions, reg, logger),
		Sessions: sessions,
		Metrics:  reg,
	}, nil
}

func (a *App) Close() error {
	return a.DB.CloseDB()
}
