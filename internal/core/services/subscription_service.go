package services

import (
	"sync"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

// SubscriptionService holds the latest subscription state pushed by the
// host app's billing integration. Users with no pushed state are free
// tier. The engine only ever reads from here.
type SubscriptionService struct {
	mu     sync.RWMutex
	byUser map[string]domain.SubscriptionState
}

func NewSubscriptionService() *SubscriptionService {
	return &SubscriptionService{
		byUser: make(map[string]domain.SubscriptionState),
	}
}

func (s *SubscriptionService) Current(userID string) domain.SubscriptionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if state, ok := s.byUser[userID]; ok {
		return state
	}
	return domain.FreeSubscription()
}

func (s *SubscriptionService) Set(userID string, state domain.SubscriptionState) error {
	if !state.Tier.Valid() {
		return domain.ErrInvalidTier
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = state
	return nil
}
