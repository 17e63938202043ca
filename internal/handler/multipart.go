package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"pnsMembership/internal/apperr"
	"pnsMembership/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	maxFormValueSize = 64 << 10
	formOverhead     = 1 << 20
)

// spooledForm is a multipart body with every file part written to a temp file.
type spooledForm struct {
	values map[string]string
	files  map[string]*storage.Upload
}

func (f *spooledForm) value(key string) string {
	return f.values[key]
}

func (f *spooledForm) file(key string) *storage.Upload {
	return f.files[key]
}

// cleanup removes temp files that storage did not consume.
func (f *spooledForm) cleanup() {
	for _, upload := range f.files {
		removeTemp(upload.TempPath)
	}
}

// parseMultipart streams the request body, rejecting any file over maxFileSize
// and any body over maxFiles such files plus a fixed allowance for text fields.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxFileSize int64, maxFiles int) (*spooledForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFileSize*int64(maxFiles)+formOverhead)

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, apperr.Validation("Invalid form data")
	}

	form := &spooledForm{
		values: map[string]string{},
		files:  map[string]*storage.Upload{},
	}

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return form, nil
		}
		if err != nil {
			form.cleanup()
			return nil, bodyError(err, maxFileSize)
		}

		name := part.FormName()
		if name == "" {
			part.Close()
			continue
		}

		if part.FileName() == "" {
			value, err := io.ReadAll(io.LimitReader(part, maxFormValueSize+1))
			part.Close()
			if err != nil {
				form.cleanup()
				return nil, bodyError(err, maxFileSize)
			}
			if len(value) > maxFormValueSize {
				form.cleanup()
				return nil, apperr.Validation("Form field too large")
			}
			if _, seen := form.values[name]; !seen {
				form.values[name] = string(value)
			}
			continue
		}

		upload, err := spool(part, maxFileSize)
		part.Close()
		if err != nil {
			form.cleanup()
			return nil, err
		}
		if upload == nil {
			continue
		}
		if previous, ok := form.files[name]; ok {
			removeTemp(previous.TempPath)
		}
		form.files[name] = upload
	}
}

// spool copies one file part to disk. Empty parts, as sent for untouched
// file inputs, yield nil.
func spool(part *multipart.Part, limit int64) (*storage.Upload, error) {
	path := filepath.Join(os.TempDir(), "pns-upload-"+uuid.NewString())
	tmp, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, apperr.Server("Server error", fmt.Errorf("create temp file: %w", err))
	}

	written, copyErr := io.Copy(tmp, io.LimitReader(part, limit+1))
	closeErr := tmp.Close()

	switch {
	case copyErr != nil:
		removeTemp(path)
		return nil, bodyError(copyErr, limit)
	case closeErr != nil:
		removeTemp(path)
		return nil, apperr.Server("Server error", fmt.Errorf("close temp file: %w", closeErr))
	case written > limit:
		removeTemp(path)
		return nil, tooLarge(limit)
	case written == 0:
		removeTemp(path)
		return nil, nil
	}

	return &storage.Upload{
		Field:       part.FormName(),
		Filename:    part.FileName(),
		ContentType: contentType(part.Header.Get("Content-Type"), path),
		TempPath:    path,
		Size:        written,
	}, nil
}

// contentType trusts the declared type unless it is missing or generic, in
// which case the file is sniffed.
func contentType(declared, path string) string {
	mediaType, _, err := mime.ParseMediaType(declared)
	if err == nil && mediaType != "" && mediaType != "application/octet-stream" {
		return strings.ToLower(mediaType)
	}

	detected, err := mimetype.DetectFile(path)
	if err != nil {
		return "application/octet-stream"
	}
	mediaType, _, _ = strings.Cut(detected.String(), ";")
	return strings.TrimSpace(mediaType)
}

func bodyError(err error, limit int64) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return tooLarge(limit)
	}
	return apperr.Validation("Invalid form data")
}

func tooLarge(limit int64) error {
	return apperr.Validation(fmt.Sprintf("File too large (max %dMB)", limit/(1024*1024)))
}

func removeTemp(path string) {
	if path != "" {
		os.Remove(path)
	}
}
