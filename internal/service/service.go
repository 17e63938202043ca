package service

import (
	"context"
	"errors"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/config"
	"pnsMembership/internal/metrics"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/session"
	"pnsMembership/internal/storage"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

type Service struct {
	Registration RegistrationService
	Auth         AuthService
	Profile      ProfileService
	Member       MemberService
	Staff        StaffService
	Post         PostService
	Media        MediaService
	Stats        StatsService
}

// Sessions groups the two token families.
type Sessions struct {
	Member *session.Manager
	Staff  *session.Manager
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage, sessions Sessions, reg *metrics.Registry, logger *zap.SugaredLogger) *Service {
	files := &fileStore{storage: store, metrics: reg}
	local := storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)

	return &Service{
		Registration: NewRegistrationService(rep.Member, files, cfg, reg),
		Auth:         NewAuthService(rep.Member, rep.Staff, sessions, reg),
		Profile:      NewProfileService(rep.Member, files, local, logger),
		Member:       NewMemberService(rep.Member, cfg),
		Staff:        NewStaffService(rep.Staff),
		Post:         NewPostService(rep.Post),
		Media:        NewMediaService(rep.Preview, files, cfg),
		Stats:        NewStatsService(rep.Stats),
	}
}

// fileStore wraps the configured backend with metrics and the client-facing error.
type fileStore struct {
	storage storage.Storage
	metrics *metrics.Registry
}

func (f *fileStore) save(ctx context.Context, upload *storage.Upload) (string, error) {
	url, err := f.storage.Save(ctx, upload)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	if f.metrics != nil {
		f.metrics.FilesStoredTotal.WithLabelValues(f.storage.Name(), outcome).Inc()
	}

	if err != nil {
		return "", apperr.Storage("Failed to store uploaded file", err)
	}
	return url, nil
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", apperr.Server("Server error", err)
	}
	return string(hash), nil
}

// lookupError turns ErrNotFound into a 404 with message and anything else into a 500.
func lookupError(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(message)
	}
	return apperr.Server("Server error", err)
}

func writeError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return apperr.Conflict("Email already exists")
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound("Not found")
	default:
		return apperr.Server("Server error", err)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
