package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkordes/tripscout/internal/domain"
)

// MemoryRepo keeps snapshots in process memory. Everything is lost on exit.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]byte)}
}

// Load returns a copy of the snapshot stored under namespace, or
// domain.ErrNotFound if nothing was saved there.
func (r *MemoryRepo) Load(_ context.Context, namespace string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.data[namespace]
	if !ok {
		return nil, fmt.Errorf("repo.MemoryRepo.Load: %w", domain.ErrNotFound)
	}
	return append([]byte(nil), b...), nil
}

// Save stores a copy of data under namespace, replacing any earlier snapshot.
func (r *MemoryRepo) Save(_ context.Context, namespace string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[namespace] = append([]byte(nil), data...)
	return nil
}
