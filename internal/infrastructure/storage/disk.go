package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// DefaultMaxBytes caps uploads at 5 MiB when no limit is configured.
const DefaultMaxBytes = 5 << 20

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// DiskStore persists uploaded images on the local filesystem under a single
// directory. Stored files are served statically; only the public path
// ("/uploads/<name>") is persisted on the event.
type DiskStore struct {
	dir      string
	maxBytes int64
	log      zerolog.Logger
}

// NewDiskStore creates the upload directory if needed.
func NewDiskStore(dir string, maxBytes int64, log zerolog.Logger) (*DiskStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir, maxBytes: maxBytes, log: log}, nil
}

// Save writes the upload to disk under a random name and returns its public
// path. Non-image files and oversized files are rejected with
// domain.ErrValidation before anything is written.
func (s *DiskStore) Save(_ context.Context, upload *ports.ImageUpload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: images only", domain.ErrValidation)
	}
	if upload.ContentType != "" && !strings.HasPrefix(upload.ContentType, "image/") {
		return "", fmt.Errorf("%w: images only", domain.ErrValidation)
	}
	if upload.Size > s.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, s.maxBytes)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	// The declared size is client-supplied; enforce the cap on the actual
	// bytes as well.
	written, err := io.Copy(f, io.LimitReader(upload.Reader, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if written > s.maxBytes {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, s.maxBytes)
	}

	s.log.Debug().Str("file", name).Int64("bytes", written).Msg("image stored")
	return "/uploads/" + name, nil
}

// Dir returns the directory uploads are written to, for static serving.
func (s *DiskStore) Dir() string {
	return s.dir
}
