package storage

import (
	"context"
	"errors"
	"os"
)

// ErrNotConfigured is returned on hosts whose local disk does not persist.
var ErrNotConfigured = errors.New("file uploads require BLOB_READ_WRITE_TOKEN or MINIO_ENDPOINT on an ephemeral host")

type unavailableStore struct{}

func (unavailableStore) Name() string {
	return "unavailable"
}

func (unavailableStore) Save(_ context.Context, upload *Upload) (string, error) {
	if upload == nil || upload.TempPath == "" {
		return "", ErrNoFile
	}
	os.Remove(upload.TempPath)
	return "", ErrNotConfigured
}
