package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/player-records-service/internal/domain/players"
)

// DatasetStore keeps the most recently fetched dataset in memory.
// Stored datasets are shared with readers and must not be modified.
type DatasetStore struct {
	mu        sync.RWMutex
	dataset   players.Dataset
	fetchedAt time.Time
	loaded    bool
}

// NewDatasetStore constructs an empty DatasetStore.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Get returns the stored dataset and when it was fetched. ok is false until the first Set.
func (s *DatasetStore) Get() (ds players.Dataset, fetchedAt time.Time, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dataset, s.fetchedAt, s.loaded
}

// Set replaces the stored dataset with a copy of ds.
func (s *DatasetStore) Set(ds players.Dataset, fetchedAt time.Time) {
	snapshot := make(players.Dataset, len(ds))
	copy(snapshot, ds)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataset = snapshot
	s.fetchedAt = fetchedAt
	s.loaded = true
}
