// Package uploads stores applicant CVs on the local filesystem.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix stored files are served under.
const PublicPrefix = "/uploads/"

var (
	ErrTooLarge        = errors.New("file exceeds the upload size limit")
	ErrUnsupportedType = errors.New("file type is not allowed")
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// BlobStore persists an uploaded file and returns the path clients can fetch it from.
type BlobStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)
	// Delete removes a file previously returned by Save. Missing files are not an error.
	Delete(ctx context.Context, path string) error
}

// LocalStore writes files into dir under random names.
type LocalStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore creates dir when missing.
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes}, nil
}

// Dir is the directory files are written to.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save copies r into a new file named by a UUID plus the original extension.
// Partial files are removed on failure.
func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	full := filepath.Join(s.dir, name)
	f, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("write upload: %w", err)
	case n > s.maxBytes:
		_ = os.Remove(full)
		return "", ErrTooLarge
	case closeErr != nil:
		_ = os.Remove(full)
		return "", fmt.Errorf("close upload: %w", closeErr)
	}
	return PublicPrefix + name, nil
}

// Delete removes the file behind a public path returned by Save.
func (s *LocalStore) Delete(_ context.Context, path string) error {
	name := filepath.Base(strings.TrimPrefix(path, PublicPrefix))
	if name == "." || name == "/" || name == "" {
		return fmt.Errorf("invalid upload path %q", path)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Handler serves stored files under PublicPrefix without directory listings.
func (s *LocalStore) Handler() http.Handler {
	fs := http.FileServer(http.Dir(s.dir))
	return http.StripPrefix(PublicPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	}))
}
