package memory

import (
	"context"
	"fmt"
	"sync"

	"tradedocs/go_backend/internal/domain/store"
)

// Store keeps collections in process memory. Records keep insertion
// order; replacing a record keeps its position.
type Store struct {
	mu    sync.RWMutex
	order map[string][]string
	data  map[string]map[string][]byte
}

func New() *Store {
	return &Store{
		order: map[string][]string{},
		data:  map[string]map[string][]byte{},
	}
}

func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	if err := store.CheckCollection(collection); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Record, 0, len(s.order[collection]))
	for _, id := range s.order[collection] {
		data := s.data[collection][id]
		out = append(out, store.Record{ID: id, Data: append([]byte(nil), data...)})
	}
	return out, nil
}

func (s *Store) Put(ctx context.Context, collection string, rec store.Record) error {
	if err := store.CheckCollection(collection); err != nil {
		return err
	}
	if rec.ID == "" {
		return fmt.Errorf("memory store: empty id in %s", collection)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.data[collection]
	if !ok {
		coll = map[string][]byte{}
		s.data[collection] = coll
	}
	if _, exists := coll[rec.ID]; !exists {
		s.order[collection] = append(s.order[collection], rec.ID)
	}
	coll[rec.ID] = append([]byte(nil), rec.Data...)
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := store.CheckCollection(collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[collection][id]; !ok {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	delete(s.data[collection], id)
	ids := s.order[collection]
	for i, v := range ids {
		if v == id {
			s.order[collection] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
