package service

import (
	"context"
	"fmt"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/config"
	"pnsMembership/internal/models"
	"pnsMembership/internal/repository"
	"pnsMembership/internal/storage"
)

const (
	previewFolder      = "previews"
	previewContentType = "application/pdf"
)

// MediaService handles staff uploads that are not tied to a member.
type MediaService interface {
	UploadImage(ctx context.Context, upload *storage.Upload) (string, error)
	UploadPreview(ctx context.Context, upload *storage.Upload) (*models.Preview, error)
	LatestPreview(ctx context.Context) (*models.Preview, error)
}

type mediaService struct {
	previewRepo repository.PreviewRepository
	files       *fileStore
	cfg         *config.Config
}

func NewMediaService(previewRepo repository.PreviewRepository, files *fileStore, cfg *config.Config) MediaService {
	return &mediaService{
		previewRepo: previewRepo,
		files:       files,
		cfg:         cfg,
	}
}

func (m *mediaService) UploadImage(ctx context.Context, upload *storage.Upload) (string, error) {
	if upload == nil || upload.TempPath == "" {
		return "", apperr.Validation("No file uploaded")
	}
	if !fileInfo(upload).IsImage() {
		return "", apperr.Validation("Invalid file type")
	}

	upload.Field = "image"
	return m.files.save(ctx, upload)
}

func (m *mediaService) UploadPreview(ctx context.Context, upload *storage.Upload) (*models.Preview, error) {
	if upload == nil || upload.TempPath == "" {
		return nil, apperr.Validation("PDF file is required")
	}
	if upload.ContentType != previewContentType {
		return nil, apperr.Validation("Preview must be a PDF file")
	}
	if limit := m.cfg.Uploads.MaxPreviewSize; limit > 0 && upload.Size > limit {
		return nil, apperr.Validation(fmt.Sprintf("PDF must be ≤ %dMB", limit/(1024*1024)))
	}

	upload.Field = "preview"
	upload.Folder = previewFolder
	url, err := m.files.save(ctx, upload)
	if err != nil {
		return nil, err
	}

	preview, err := m.previewRepo.Create(ctx, url)
	if err != nil {
		return nil, apperr.Server("Failed to save preview", err)
	}
	return preview, nil
}

func (m *mediaService) LatestPreview(ctx context.Context) (*models.Preview, error) {
	preview, err := m.previewRepo.Latest(ctx)
	if err != nil {
		return nil, lookupError(err, "No preview available")
	}
	return preview, nil
}
