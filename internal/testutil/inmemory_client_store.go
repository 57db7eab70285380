package testutil

import (
	"context"
	"sync"

	"github.com/chairflow/chairflow/internal/domain/client"
	ierr "github.com/chairflow/chairflow/internal/errors"
)

// InMemoryClientStore implements client.Repository
type InMemoryClientStore struct {
	mu      sync.RWMutex
	clients map[string]*client.Client
}

// NewInMemoryClientStore creates a new in-memory client store
func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{clients: make(map[string]*client.Client)}
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c.ID]; ok {
		return ierr.NewError("client already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.clients[c.ID] = c
	return nil
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, ierr.NewError("client not found").Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryClientStore) List(ctx context.Context) ([]*client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var clients []*client.Client
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	return clients, nil
}
