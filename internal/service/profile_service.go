package service

import (
	"context"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/storage"

	"go.uber.org/zap"
)

type ProfileService interface {
	GetProfile(ctx context.Context, memberID int64) (*models.Member, error)
	ChangePhoto(ctx context.Context, memberID int64, upload *storage.Upload) (string, error)
}

// localRemover deletes files that were written by the local backend.
type localRemover interface {
	Owns(url string) bool
	Remove(url string) error
}

type profileService struct {
	memberRepo repository.MemberRepository
	files      *fileStore
	local      localRemover
	logger     *zap.SugaredLogger
}

func NewProfileService(memberRepo repository.MemberRepository, files *fileStore, local localRemover, logger *zap.SugaredLogger) ProfileService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &profileService{
		memberRepo: memberRepo,
		files:      files,
		local:      local,
		logger:     logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, memberID int64) (*models.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, lookupError(err, "User not found")
	}
	return member, nil
}

// ChangePhoto stores a new avatar, points the member at it and then drops
// the previous file when it lives on local disk.
func (s *profileService) ChangePhoto(ctx context.Context, memberID int64, upload *storage.Upload) (string, error) {
	if upload == nil || upload.TempPath == "" {
		return "", apperr.Validation("No photo uploaded")
	}
	if !fileInfo(upload).IsImage() {
		return "", apperr.Validation("Invalid file type")
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return "", lookupError(err, "User not found")
	}

	upload.Field = "avatar"
	url, err := s.files.save(ctx, upload)
	if err != nil {
		return "", err
	}

	if err := s.memberRepo.UpdatePhoto(ctx, memberID, url); err != nil {
		return "", lookupError(err, "User not found")
	}

	if old := member.OwnerPhoto; old != nil && *old != url && s.local.Owns(*old) {
		if err := s.local.Remove(*old); err != nil {
			s.logger.Warnw("failed to remove previous avatar", "member_id", memberID, "url", *old, "error", err)
		}
	}

	return url, nil
}
