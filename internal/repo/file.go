package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkordes/tripscout/internal/domain"
)

// FileRepo keeps every namespace in one JSON document on disk:
//
//	{"tripscout-storage": {"state": {...}, "version": 0}}
//
// Writes go to a temporary file that is renamed over the original, so a crash
// mid-write leaves the previous document intact.
type FileRepo struct {
	path string

	mu sync.Mutex
}

// NewFileRepo returns a FileRepo writing to path. Missing parent directories
// are created on first save.
func NewFileRepo(path string) *FileRepo {
	return &FileRepo{path: path}
}

// Load returns the payload stored for namespace.
func (r *FileRepo) Load(_ context.Context, namespace string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readLocked()
	if err != nil {
		return nil, fmt.Errorf("repo.FileRepo.Load: %w", err)
	}
	payload, ok := doc[namespace]
	if !ok {
		return nil, fmt.Errorf("repo.FileRepo.Load: %w", domain.ErrNotFound)
	}
	return payload, nil
}

// Save replaces the payload for namespace. Other namespaces in the file are
// preserved.
func (r *FileRepo) Save(_ context.Context, namespace string, data []byte) error {
	if !json.Valid(data) {
		return fmt.Errorf("repo.FileRepo.Save: %w: payload is not valid JSON", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.readLocked()
	if err != nil {
		return fmt.Errorf("repo.FileRepo.Save: %w", err)
	}
	doc[namespace] = json.RawMessage(data)

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("repo.FileRepo.Save: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("repo.FileRepo.Save: mkdir: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("repo.FileRepo.Save: write temp file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("repo.FileRepo.Save: replace file: %w", err)
	}
	return nil
}

// readLocked returns the decoded document, or an empty one if the file does
// not exist yet.
func (r *FileRepo) readLocked() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	b, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return doc, nil
}
