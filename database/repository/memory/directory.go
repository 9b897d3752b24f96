package memory

import (
	"context"
	"sync"

	"partnerhub/database/repository"
	directoryRepo "partnerhub/database/repository/directory"
	"partnerhub/models"
)

var _ directoryRepo.DirectoryRepository = (*DirectoryStore)(nil)

type DirectoryStore struct {
	mu      sync.RWMutex
	entries map[string]models.DirectoryEntry
}

func NewDirectoryStore(entries ...models.DirectoryEntry) *DirectoryStore {
	s := &DirectoryStore{entries: make(map[string]models.DirectoryEntry)}
	for _, e := range entries {
		s.entries[e.PartnerID] = e
	}
	return s
}

func (s *DirectoryStore) Add(e models.DirectoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.PartnerID] = e
}

func (s *DirectoryStore) GetByPartnerID(_ context.Context, partnerID string) (*models.DirectoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[partnerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &e, nil
}
