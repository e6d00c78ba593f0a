package state

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

type memoryStateManager struct {
	generated *cache.Cache
	locks     *cache.Cache // route -> holder token

	// mu keeps the token check in Unlock atomic with TryLock.
	mu sync.Mutex
}

// NewMemoryStateManager keeps regeneration state for a single process.
func NewMemoryStateManager() StateManager {
	return &memoryStateManager{
		generated: cache.New(cache.NoExpiration, 0),
		locks:     cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (s *memoryStateManager) LastGenerated(_ context.Context, route string) (time.Time, error) {
	val, found := s.generated.Get(route)
	if !found {
		return time.Time{}, nil // never generated
	}
	return val.(time.Time), nil
}

func (s *memoryStateManager) MarkGenerated(_ context.Context, route string, at time.Time) error {
	s.generated.Set(route, at, cache.NoExpiration)
	return nil
}

func (s *memoryStateManager) TryLock(_ context.Context, route string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()

	// Add fails while an unexpired lock exists.
	if err := s.locks.Add(route, token, ttl); err != nil {
		return "", false, nil
	}
	return token, true, nil
}

func (s *memoryStateManager) Unlock(_ context.Context, route, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if holder, found := s.locks.Get(route); found && holder == token {
		s.locks.Delete(route)
	}
	return nil
}
