package memory

import (
	"context"
	"sync"

	"github.com/aretw0/zconv/pkg/domain"
)

// Store implements ports.HistoryStore in memory.
// Safe for concurrent use.
type Store struct {
	records []domain.Record
	mu      sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Append adds the record after the existing ones.
func (s *Store) Append(ctx context.Context, rec domain.Record) error {
	// Copy the slice so the caller can't mutate stored data
	rec.Output = append([]int(nil), rec.Output...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// List returns a copy of all records in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Record, len(s.records))
	for i, rec := range s.records {
		rec.Output = append([]int(nil), rec.Output...)
		out[i] = rec
	}
	return out, nil
}

// Clear removes every record.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}
