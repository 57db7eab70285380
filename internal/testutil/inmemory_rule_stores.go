package testutil

import (
	"context"
	"sync"

	"github.com/chairflow/chairflow/internal/domain/bulkdiscount"
	"github.com/chairflow/chairflow/internal/domain/seasonal"
	"github.com/chairflow/chairflow/internal/domain/tier"
	ierr "github.com/chairflow/chairflow/internal/errors"
)

// InMemoryBulkDiscountStore implements bulkdiscount.Repository
type InMemoryBulkDiscountStore struct {
	mu        sync.RWMutex
	rules     map[string]*bulkdiscount.Rule
	forcedErr error
}

// NewInMemoryBulkDiscountStore creates a new in-memory bulk discount store
func NewInMemoryBulkDiscountStore() *InMemoryBulkDiscountStore {
	return &InMemoryBulkDiscountStore{rules: make(map[string]*bulkdiscount.Rule)}
}

// SetForcedError makes every subsequent read fail with err
func (s *InMemoryBulkDiscountStore) SetForcedError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forcedErr = err
}

func (s *InMemoryBulkDiscountStore) Create(ctx context.Context, rule *bulkdiscount.Rule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[rule.ID] = rule
	return nil
}

func (s *InMemoryBulkDiscountStore) Get(ctx context.Context, id string) (*bulkdiscount.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	rule, ok := s.rules[id]
	if !ok {
		return nil, ierr.NewError("bulk discount rule not found").Mark(ierr.ErrNotFound)
	}
	return rule, nil
}

func (s *InMemoryBulkDiscountStore) ListActive(ctx context.Context) ([]*bulkdiscount.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	var rules []*bulkdiscount.Rule
	for _, r := range s.rules {
		if r.IsActive {
			rules = append(rules, r)
		}
	}
	return rules, nil
}

// InMemoryTierStore implements tier.Repository
type InMemoryTierStore struct {
	mu          sync.RWMutex
	tiers       map[string]*tier.PricingTier
	assignments map[string]*tier.Assignment // keyed by client id
	forcedErr   error
}

// NewInMemoryTierStore creates a new in-memory tier store
func NewInMemoryTierStore() *InMemoryTierStore {
	return &InMemoryTierStore{
		tiers:       make(map[string]*tier.PricingTier),
		assignments: make(map[string]*tier.Assignment),
	}
}

// SetForcedError makes every subsequent read fail with err
func (s *InMemoryTierStore) SetForcedError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forcedErr = err
}

func (s *InMemoryTierStore) CreateTier(ctx context.Context, t *tier.PricingTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tiers[t.ID] = t
	return nil
}

func (s *InMemoryTierStore) GetTier(ctx context.Context, id string) (*tier.PricingTier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	t, ok := s.tiers[id]
	if !ok {
		return nil, ierr.NewError("pricing tier not found").Mark(ierr.ErrNotFound)
	}
	return t, nil
}

func (s *InMemoryTierStore) ListTiers(ctx context.Context) ([]*tier.PricingTier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	var tiers []*tier.PricingTier
	for _, t := range s.tiers {
		tiers = append(tiers, t)
	}
	return tiers, nil
}

func (s *InMemoryTierStore) AssignClient(ctx context.Context, assignment *tier.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// one active assignment per client; a new one replaces the old
	s.assignments[assignment.ClientID] = assignment
	return nil
}

func (s *InMemoryTierStore) GetAssignmentByClient(ctx context.Context, clientID string) (*tier.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	assignment, ok := s.assignments[clientID]
	if !ok {
		return nil, ierr.NewError("client has no tier assignment").Mark(ierr.ErrNotFound)
	}
	return assignment, nil
}

// InMemorySeasonalStore implements seasonal.Repository
type InMemorySeasonalStore struct {
	mu        sync.RWMutex
	windows   map[string]*seasonal.Window
	forcedErr error
}

// NewInMemorySeasonalStore creates a new in-memory seasonal window store
func NewInMemorySeasonalStore() *InMemorySeasonalStore {
	return &InMemorySeasonalStore{windows: make(map[string]*seasonal.Window)}
}

// SetForcedError makes every subsequent read fail with err
func (s *InMemorySeasonalStore) SetForcedError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forcedErr = err
}

func (s *InMemorySeasonalStore) Create(ctx context.Context, w *seasonal.Window) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[w.ID] = w
	return nil
}

func (s *InMemorySeasonalStore) Get(ctx context.Context, id string) (*seasonal.Window, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	w, ok := s.windows[id]
	if !ok {
		return nil, ierr.NewError("seasonal window not found").Mark(ierr.ErrNotFound)
	}
	return w, nil
}

func (s *InMemorySeasonalStore) ListActive(ctx context.Context) ([]*seasonal.Window, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	var windows []*seasonal.Window
	for _, w := range s.windows {
		if w.IsActive {
			windows = append(windows, w)
		}
	}
	return windows, nil
}
