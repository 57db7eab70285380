package testutil

import (
	"context"
	"sync"

	"github.com/chairflow/chairflow/internal/domain/job"
	ierr "github.com/chairflow/chairflow/internal/errors"
)

// InMemoryJobStore implements job.Repository
type InMemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]*job.Job
}

// NewInMemoryJobStore creates a new in-memory job store
func NewInMemoryJobStore() *InMemoryJobStore {
	return &InMemoryJobStore{jobs: make(map[string]*job.Job)}
}

func (s *InMemoryJobStore) Create(ctx context.Context, j *job.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.ID]; ok {
		return ierr.NewError("job already exists").Mark(ierr.ErrAlreadyExists)
	}
	s.jobs[j.ID] = j
	return nil
}

func (s *InMemoryJobStore) Get(ctx context.Context, id string) (*job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[id]
	if !ok {
		return nil, ierr.NewError("job not found").Mark(ierr.ErrNotFound)
	}
	return j, nil
}

func (s *InMemoryJobStore) Update(ctx context.Context, j *job.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[j.ID]; !ok {
		return ierr.NewError("job not found").Mark(ierr.ErrNotFound)
	}
	s.jobs[j.ID] = j
	return nil
}

func (s *InMemoryJobStore) ListByClient(ctx context.Context, clientID string) ([]*job.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var jobs []*job.Job
	for _, j := range s.jobs {
		if j.ClientID == clientID {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}
