package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

func newTestStore(t *testing.T, maxBytes int64) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), maxBytes, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return store
}

func upload(name, contentType, body string) *ports.ImageUpload {
	return &ports.ImageUpload{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Reader:      strings.NewReader(body),
	}
}

func TestDiskStore_SaveReturnsPublicPath(t *testing.T) {
	store := newTestStore(t, 0)

	path, err := store.Save(context.Background(), upload("poster.png", "image/png", "pngdata"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(path, "/uploads/") || !strings.HasSuffix(path, ".png") {
		t.Fatalf("unexpected public path: %s", path)
	}

	onDisk := filepath.Join(store.Dir(), strings.TrimPrefix(path, "/uploads/"))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "pngdata" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestDiskStore_RandomizedNames(t *testing.T) {
	store := newTestStore(t, 0)

	first, err := store.Save(context.Background(), upload("same.jpg", "image/jpeg", "a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := store.Save(context.Background(), upload("same.jpg", "image/jpeg", "b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Fatalf("identical upload names collided: %s", first)
	}
}

func TestDiskStore_RejectsNonImage(t *testing.T) {
	store := newTestStore(t, 0)

	cases := []struct {
		name        string
		filename    string
		contentType string
	}{
		{"extension", "notes.txt", "text/plain"},
		{"no extension", "binary", ""},
		{"content type mismatch", "fake.png", "application/octet-stream"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Save(context.Background(), upload(tc.filename, tc.contentType, "data"))
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestDiskStore_RejectsOversizedDeclaredSize(t *testing.T) {
	store := newTestStore(t, 8)

	_, err := store.Save(context.Background(), upload("big.png", "image/png", "way more than eight"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestDiskStore_RejectsOversizedActualBytes(t *testing.T) {
	store := newTestStore(t, 8)

	// Declared size lies; the real stream is over the cap.
	up := upload("big.png", "image/png", "way more than eight")
	up.Size = 4

	_, err := store.Save(context.Background(), up)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	entries, readErr := os.ReadDir(store.Dir())
	if readErr != nil {
		t.Fatalf("ReadDir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("partial file left behind: %v", entries)
	}
}
