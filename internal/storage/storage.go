package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"pnsMembership/internal/config"

	"go.uber.org/zap"
)

// ErrNoFile is returned when an upload has no temporary file behind it.
var ErrNoFile = errors.New("no file")

// Upload is a file spooled to local disk by the request parser.
type Upload struct {
	// Field is the logical name used in the stored file name.
	Field       string
	Filename    string
	ContentType string
	TempPath    string
	Size        int64
	// Folder is an optional sub-directory, e.g. "previews".
	Folder string
}

// Storage persists an upload and returns its public URL. Implementations
// always consume the temporary file: it is moved or deleted.
type Storage interface {
	Save(ctx context.Context, upload *Upload) (string, error)
	Name() string
}

const maxBaseLength = 40

var (
	unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}._-]+`)
	extPattern  = regexp.MustCompile(`^\.[A-Za-z0-9]{1,10}$`)
)

// ObjectName builds "<unix-millis>-<field>-<sanitized-basename><ext>".
func ObjectName(field, filename string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" {
		base = ""
	}

	ext := filepath.Ext(base)
	base = strings.TrimSuffix(base, ext)
	if !extPattern.MatchString(ext) {
		ext = ""
	}

	base = strings.Trim(unsafeChars.ReplaceAllString(base, "_"), "._")
	if base == "" {
		base = "file"
	}
	for utf8.RuneCountInString(base) > maxBaseLength {
		_, size := utf8.DecodeLastRuneInString(base)
		base = base[:len(base)-size]
	}

	return fmt.Sprintf("%d-%s-%s%s", now.UnixMilli(), field, base, strings.ToLower(ext))
}

func objectKey(folder, name string) string {
	if folder == "" {
		return name
	}
	return strings.Trim(folder, "/") + "/" + name
}

// New picks the backend once at startup: blob token, then MinIO endpoint,
// then the ephemeral-host guard, then local disk.
func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (Storage, error) {
	switch {
	case cfg.Blob.Token != "":
		logger.Infow("file storage selected", "backend", "blob", "prefix", cfg.Blob.Prefix, "access", cfg.Blob.AccessLevel)
		return NewBlobStore(cfg.Blob, nil), nil
	case cfg.MinIO.Endpoint != "":
		store, err := NewMinIOStore(ctx, cfg.MinIO)
		if err != nil {
			return nil, err
		}
		logger.Infow("file storage selected", "backend", "minio", "endpoint", cfg.MinIO.Endpoint, "bucket", cfg.MinIO.BucketName)
		return store, nil
	case cfg.Uploads.Ephemeral:
		logger.Warnw("no durable file storage configured on an ephemeral host; uploads will be rejected")
		return unavailableStore{}, nil
	default:
		logger.Infow("file storage selected", "backend", "local", "dir", cfg.Uploads.Dir)
		return NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix), nil
	}
}
