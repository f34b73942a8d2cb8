package movies

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/filmoteca-go/apperror"
)

// MemStore keeps the catalog in process memory. It exists for development and
// tests, mirroring the catalog's original life as a plain mutable list. A
// single RWMutex serializes mutations, which is enough for the per-record
// atomicity the Store contract asks for.
type MemStore struct {
	mu      sync.RWMutex
	records []Movie
	nextID  int
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{nextID: 1}
}

// NewSeededMemStore creates an in-memory store preloaded with the two catalog
// records the service historically started with.
func NewSeededMemStore() *MemStore {
	s := NewMemStore()
	seed := Movie{
		Title:    "Avatar",
		Overview: "En un exuberante planeta llamado Pandora viven los Na'vi, seres que ...",
		Year:     2009,
		Rating:   7.8,
		Category: "Acción",
	}
	for i := 0; i < 2; i++ {
		if _, err := s.Create(context.Background(), seed); err != nil {
			// Create on an in-memory store cannot fail.
			panic(err)
		}
	}
	return s
}

// List returns all records in insertion order.
func (s *MemStore) List(ctx context.Context) ([]Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Movie, len(s.records))
	copy(out, s.records)
	return out, nil
}

// GetByID returns the record with the given id.
func (s *MemStore) GetByID(ctx context.Context, id int) (*Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.records {
		if m.ID == id {
			found := m
			return &found, nil
		}
	}
	return nil, apperror.NewNotFoundError(fmt.Sprintf("movie with id %d not found", id), nil)
}

// ListByCategory returns the records matching category, in insertion order.
func (s *MemStore) ListByCategory(ctx context.Context, category string) ([]Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []Movie{}
	for _, m := range s.records {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out, nil
}

// Create assigns the next id and appends the record.
func (s *MemStore) Create(ctx context.Context, m Movie) (*Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextID
	s.nextID++
	s.records = append(s.records, m)
	created := m
	return &created, nil
}

// Update overwrites all fields except the id of the record with the given id.
func (s *MemStore) Update(ctx context.Context, id int, m Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			m.ID = id
			s.records[i] = m
			return nil
		}
	}
	return apperror.NewNotFoundError(fmt.Sprintf("movie with id %d not found", id), nil)
}

// Delete removes the record with the given id.
func (s *MemStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFoundError(fmt.Sprintf("movie with id %d not found", id), nil)
}
