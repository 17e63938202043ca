package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// ErrNotLocal is returned by Remove for URLs this store did not produce.
var ErrNotLocal = errors.New("file is not stored locally")

type LocalStore struct {
	dir          string
	publicPrefix string
	now          func() time.Time
}

func NewLocalStore(dir, publicPrefix string) *LocalStore {
	return &LocalStore{
		dir:          dir,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
		now:          time.Now,
	}
}

func (s *LocalStore) Name() string {
	return "local"
}

func (s *LocalStore) Save(ctx context.Context, upload *Upload) (string, error) {
	if upload == nil || upload.TempPath == "" {
		return "", ErrNoFile
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	destDir := filepath.Join(s.dir, filepath.FromSlash(upload.Folder))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	name := ObjectName(upload.Field, upload.Filename, s.now())
	if err := moveFile(upload.TempPath, filepath.Join(destDir, name)); err != nil {
		return "", err
	}

	return path.Join(s.publicPrefix, objectKey(upload.Folder, name)), nil
}

// Owns reports whether url points into this store.
func (s *LocalStore) Owns(url string) bool {
	return strings.HasPrefix(url, s.publicPrefix+"/")
}

// Remove deletes a file previously returned by Save. Missing files are not an error.
func (s *LocalStore) Remove(url string) error {
	if !s.Owns(url) || strings.Contains(url, "..") {
		return ErrNotLocal
	}

	rel := path.Clean(strings.TrimPrefix(url, s.publicPrefix))

	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", url, err)
	}
	return nil
}

// moveFile renames src to dst, copying across devices when rename cannot.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("move upload: %w", err)
	}

	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove temp file: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open temp file: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create upload: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("copy upload: %w", err)
	}
	return out.Close()
}
