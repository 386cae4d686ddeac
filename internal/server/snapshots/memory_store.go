package snapshots

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/cvpro/internal/common"
)

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Save(ctx context.Context, userID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[userID] = cp
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, userID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return data, nil
}
