package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"pnsMembership/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "upload-*")
	require.NoError(t, err)
	_, err = f.Write(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestObjectName(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		name     string
		field    string
		filename string
		want     string
	}{
		{"plain", "ownerPhoto", "me.jpg", "1700000000123-ownerPhoto-me.jpg"},
		{"spaces", "paymentReceipt", "my receipt  scan.PNG", "1700000000123-paymentReceipt-my_receipt_scan.png"},
		{"path stripped", "ownershipProof", "../../etc/passwd", "1700000000123-ownershipProof-passwd"},
		{"windows path", "ownershipProof", `C:\docs\deed.pdf`, "1700000000123-ownershipProof-deed.pdf"},
		{"empty", "avatar", "", "1700000000123-avatar-file"},
		{"long", "avatar", strings.Repeat("a", 60) + ".gif", "1700000000123-avatar-" + strings.Repeat("a", 40) + ".gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ObjectName(tt.field, tt.filename, now))
		})
	}
}

func TestLocalStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")
	content := []byte("%PDF-1.4 proof of ownership")
	tmp := writeTemp(t, content)

	url, err := store.Save(context.Background(), &Upload{
		Field:    "ownershipProof",
		Filename: "deed scan.pdf",
		TempPath: tmp,
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^/uploads/\d+-ownershipProof-deed_scan\.pdf$`), url)

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	_, err = os.Stat(tmp)
	assert.True(t, os.IsNotExist(err), "temp file must be consumed")
}

func TestLocalStore_Folder(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")

	url, err := store.Save(context.Background(), &Upload{
		Field:    "preview",
		Filename: "brochure.pdf",
		TempPath: writeTemp(t, []byte("pdf")),
		Folder:   "previews",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/previews/"), url)
	_, err = os.Stat(filepath.Join(dir, "previews", filepath.Base(url)))
	assert.NoError(t, err)
}

func TestLocalStore_NoFile(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")

	_, err := store.Save(context.Background(), &Upload{Field: "ownerPhoto"})
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = store.Save(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoFile)
}

func TestLocalStore_MissingTempFile(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "/uploads")

	_, err := store.Save(context.Background(), &Upload{
		Field:    "ownerPhoto",
		Filename: "a.jpg",
		TempPath: filepath.Join(t.TempDir(), "gone"),
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFile)
}

func TestLocalStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir, "/uploads")

	url, err := store.Save(context.Background(), &Upload{Field: "avatar", Filename: "a.jpg", TempPath: writeTemp(t, []byte("img"))})
	require.NoError(t, err)

	require.NoError(t, store.Remove(url))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(url)))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Remove(url), "removing twice is fine")
	assert.ErrorIs(t, store.Remove("https://blob.example.com/a.jpg"), ErrNotLocal)
	assert.ErrorIs(t, store.Remove("/uploads/../secret"), ErrNotLocal)
}

func TestBlobStore_Save(t *testing.T) {
	var gotPath, gotAccess, gotAuth, gotType string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccess = r.URL.Query().Get("access")
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn.example.com" + r.URL.Path})
	}))
	defer server.Close()

	store := NewBlobStore(config.Blob{Token: "tok", Prefix: "pns-membership", AccessLevel: "public", APIURL: server.URL}, server.Client())
	tmp := writeTemp(t, []byte("receipt-bytes"))

	url, err := store.Save(context.Background(), &Upload{
		Field:       "paymentReceipt",
		Filename:    "bkash.png",
		ContentType: "image/png",
		TempPath:    tmp,
	})
	require.NoError(t, err)

	assert.Regexp(t, `^/pns-membership/\d+-paymentReceipt-bkash\.png$`, gotPath)
	assert.Equal(t, "public", gotAccess)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, []byte("receipt-bytes"), gotBody)
	assert.Equal(t, "https://cdn.example.com"+gotPath, url)

	_, err = os.Stat(tmp)
	assert.True(t, os.IsNotExist(err))
}

func TestBlobStore_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	store := NewBlobStore(config.Blob{Token: "tok", AccessLevel: "public", APIURL: server.URL}, server.Client())
	tmp := writeTemp(t, []byte("x"))

	_, err := store.Save(context.Background(), &Upload{Field: "ownerPhoto", Filename: "a.jpg", TempPath: tmp})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(403)")
	assert.Contains(t, err.Error(), "quota exceeded")

	_, statErr := os.Stat(tmp)
	assert.True(t, os.IsNotExist(statErr), "temp file is removed even on failure")
}

func TestBlobStore_MissingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	store := NewBlobStore(config.Blob{Token: "tok", AccessLevel: "private", APIURL: server.URL}, server.Client())

	_, err := store.Save(context.Background(), &Upload{Field: "ownerPhoto", Filename: "a.jpg", TempPath: writeTemp(t, []byte("x"))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did not return a URL")
}

func TestNew_SelectsBackend(t *testing.T) {
	logger := zap.NewNop().Sugar()
	ctx := context.Background()

	cfg := &config.Config{Uploads: config.Uploads{Dir: t.TempDir(), PublicPrefix: "/uploads"}}
	store, err := New(ctx, cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "local", store.Name())

	cfg.Uploads.Ephemeral = true
	store, err = New(ctx, cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "unavailable", store.Name())

	tmp := writeTemp(t, []byte("x"))
	_, err = store.Save(ctx, &Upload{Field: "ownerPhoto", TempPath: tmp})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, statErr := os.Stat(tmp)
	assert.True(t, os.IsNotExist(statErr))

	cfg.Blob = config.Blob{Token: "tok", APIURL: "https://blob.example.com", AccessLevel: "public"}
	store, err = New(ctx, cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, "blob", store.Name())
}
