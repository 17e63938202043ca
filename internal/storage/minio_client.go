package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"pnsMembership/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStore writes uploads to an S3-compatible bucket.
type MinIOStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	now       func() time.Time
}

func NewMinIOStore(ctx context.Context, cfg config.MinIO) (*MinIOStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.BucketName, err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.BucketName, err)
		}
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = client.EndpointURL().String()
	}

	return &MinIOStore{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		now:       time.Now,
	}, nil
}

func (m *MinIOStore) Name() string {
	return "minio"
}

func (m *MinIOStore) Save(ctx context.Context, upload *Upload) (string, error) {
	if upload == nil || upload.TempPath == "" {
		return "", ErrNoFile
	}
	defer os.Remove(upload.TempPath)

	file, err := os.Open(upload.TempPath)
	if err != nil {
		return "", fmt.Errorf("open temp file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("stat temp file: %w", err)
	}

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := m.now()
	objectName := objectKey(upload.Folder, ObjectName(upload.Field, upload.Filename, now))

	_, err = m.client.PutObject(ctx, m.bucket, objectName, file, info.Size(),
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": upload.Filename,
				"field":             upload.Field,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to minio: %w", upload.Field, err)
	}

	return m.objectURL(objectName), nil
}

func (m *MinIOStore) objectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.publicURL, m.bucket, objectName)
}
