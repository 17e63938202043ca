package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"pnsMembership/internal/config"
)

// BlobStore uploads to a hosted blob HTTP API that answers with {"url": ...}.
type BlobStore struct {
	client *http.Client
	cfg    config.Blob
	now    func() time.Time
}

// NewBlobStore uses a 60s client when none is given.
func NewBlobStore(cfg config.Blob, client *http.Client) *BlobStore {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &BlobStore{client: client, cfg: cfg, now: time.Now}
}

func (s *BlobStore) Name() string {
	return "blob"
}

type blobResponse struct {
	URL string `json:"url"`
}

func (s *BlobStore) Save(ctx context.Context, upload *Upload) (string, error) {
	if upload == nil || upload.TempPath == "" {
		return "", ErrNoFile
	}
	// the temp file goes away whatever the outcome
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

	key := objectKey(upload.Folder, ObjectName(upload.Field, upload.Filename, s.now()))
	if s.cfg.Prefix != "" {
		key = s.cfg.Prefix + "/" + key
	}

	endpoint, err := url.JoinPath(s.cfg.APIURL, key)
	if err != nil {
		return "", fmt.Errorf("build blob url: %w", err)
	}
	endpoint += "?access=" + url.QueryEscape(s.cfg.AccessLevel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, file)
	if err != nil {
		return "", fmt.Errorf("build blob request: %w", err)
	}
	req.ContentLength = info.Size()

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to blob storage: %w", upload.Field, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("failed to upload %s to blob storage (%d): %s", upload.Field, resp.StatusCode, detail)
	}

	var body blobResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode blob response: %w", err)
	}
	if body.URL == "" {
		return "", errors.New("blob upload for " + upload.Field + " did not return a URL")
	}

	return body.URL, nil
}
