package rating

import (
	"context"
	"sync"
)

// MemoryStore keeps ratings in memory
type MemoryStore struct {
	mu      sync.RWMutex
	ratings map[int64]int
}

// NewMemoryStore returns an empty memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		ratings: make(map[int64]int),
	}
}

// Get returns the rating for the player
func (m *MemoryStore) Get(ctx context.Context, playerID int64) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rating, found := m.ratings[playerID]
	return rating, found, nil
}

// Save stores the ratings
func (m *MemoryStore) Save(ctx context.Context, ratings map[int64]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for playerID, rating := range ratings {
		m.ratings[playerID] = rating
	}

	return nil
}
