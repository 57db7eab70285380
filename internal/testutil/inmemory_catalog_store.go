package testutil

import (
	"context"
	"sync"

	"github.com/chairflow/chairflow/internal/domain/catalog"
	ierr "github.com/chairflow/chairflow/internal/errors"
)

// InMemoryCatalogStore implements catalog.Repository
type InMemoryCatalogStore struct {
	mu       sync.RWMutex
	services map[string]*catalog.ServicePriceEntry
	parts    map[string]*catalog.PartPriceEntry

	// forcedErr, when set, is returned from every read
	forcedErr error
}

// NewInMemoryCatalogStore creates a new in-memory catalog store
func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		services: make(map[string]*catalog.ServicePriceEntry),
		parts:    make(map[string]*catalog.PartPriceEntry),
	}
}

// SetForcedError makes every subsequent read fail with err
func (s *InMemoryCatalogStore) SetForcedError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forcedErr = err
}

func (s *InMemoryCatalogStore) CreateService(ctx context.Context, entry *catalog.ServicePriceEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[entry.ID]; ok {
		return ierr.NewError("service already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.services[entry.ID] = entry
	return nil
}

func (s *InMemoryCatalogStore) GetService(ctx context.Context, id string) (*catalog.ServicePriceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	entry, ok := s.services[id]
	if !ok {
		return nil, ierr.NewError("service not found").Mark(ierr.ErrNotFound)
	}
	return entry, nil
}

func (s *InMemoryCatalogStore) ListActiveServices(ctx context.Context) ([]*catalog.ServicePriceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	var entries []*catalog.ServicePriceEntry
	for _, e := range s.services {
		if e.IsActive {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *InMemoryCatalogStore) GetServicesByIDs(ctx context.Context, ids []string) ([]*catalog.ServicePriceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	var entries []*catalog.ServicePriceEntry
	for _, id := range ids {
		if e, ok := s.services[id]; ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *InMemoryCatalogStore) CreatePart(ctx context.Context, entry *catalog.PartPriceEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parts[entry.ID]; ok {
		return ierr.NewError("part already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.parts[entry.ID] = entry
	return nil
}

func (s *InMemoryCatalogStore) GetPart(ctx context.Context, id string) (*catalog.PartPriceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	entry, ok := s.parts[id]
	if !ok {
		return nil, ierr.NewError("part not found").Mark(ierr.ErrNotFound)
	}
	return entry, nil
}

func (s *InMemoryCatalogStore) ListActiveParts(ctx context.Context) ([]*catalog.PartPriceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	var entries []*catalog.PartPriceEntry
	for _, e := range s.parts {
		if e.IsActive {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *InMemoryCatalogStore) GetPartsByIDs(ctx context.Context, ids []string) ([]*catalog.PartPriceEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	var entries []*catalog.PartPriceEntry
	for _, id := range ids {
		if e, ok := s.parts[id]; ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
