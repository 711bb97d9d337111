package entity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"slices"
	"sync"
)

// Compile-time assertion that MemStore satisfies the Store interface.
var _ Store = (*MemStore)(nil)

// MemStore is a thread-safe, in-memory implementation of [Store].
// It is suitable for single-process use and testing.
// The zero value is ready to use.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemStore returns an initialised [MemStore].
func NewMemStore() *MemStore {
	return &MemStore{
		records: make(map[string]Record),
	}
}

// Add implements [Store.Add].
func (s *MemStore) Add(ctx context.Context, rec Record) (Record, error) {
	if rec.ID == "" {
		id, err := generateID()
		if err != nil {
			return Record{}, fmt.Errorf("entity: generate id: %w", err)
		}
		rec.ID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.records == nil {
		s.records = make(map[string]Record)
	}

	if _, exists := s.records[rec.ID]; exists {
		return Record{}, ErrDuplicateID
	}

	s.records[rec.ID] = rec
	return rec, nil
}

// Get implements [Store.Get].
func (s *MemStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

// List implements [Store.List].
func (s *MemStore) List(ctx context.Context, opts ListOptions) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if !matchesOpts(r, opts) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

// Update implements [Store.Update].
func (s *MemStore) Update(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[rec.ID]; !ok {
		return ErrNotFound
	}

	s.records[rec.ID] = rec
	return nil
}

// Remove implements [Store.Remove].
func (s *MemStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}

	delete(s.records, id)
	return nil
}

// BulkImport implements [Store.BulkImport].
// The import is best-effort: records are added one at a time and the count of
// successfully added records is returned along with the first error encountered.
func (s *MemStore) BulkImport(ctx context.Context, recs []Record) (int, error) {
	count := 0
	for _, r := range recs {
		if _, err := s.Add(ctx, r); err != nil {
			return count, fmt.Errorf("entity: bulk import at index %d (name %q): %w", count, r.Name, err)
		}
		count++
	}
	return count, nil
}

// generateID produces a random 16-byte hex string using crypto/rand.
// The resulting string is 32 hex characters and is statistically unique.
func generateID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// matchesOpts reports whether r satisfies all conditions in opts.
func matchesOpts(r Record, opts ListOptions) bool {
	if opts.Type != "" && r.Type != opts.Type {
		return false
	}
	for _, want := range opts.Tags {
		if !slices.Contains(r.Tags, want) {
			return false
		}
	}
	return true
}
