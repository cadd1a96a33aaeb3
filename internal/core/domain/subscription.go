package domain

import (
	"errors"
	"time"
)

var ErrInvalidTier = errors.New("invalid subscription tier (must be free or premium)")

type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

func (t SubscriptionTier) Valid() bool {
	return t == TierFree || t == TierPremium
}

// SubscriptionState is pushed by the host app's billing integration.
// The engine treats it as a read-only input.
type SubscriptionState struct {
	Tier      SubscriptionTier `json:"tier" db:"tier"`
	IsActive  bool             `json:"is_active" db:"is_active"`
	ExpiresAt *time.Time       `json:"expires_at,omitempty" db:"expires_at"`
}

// FreeSubscription is the default state for users with no pushed billing
// information.
func FreeSubscription() SubscriptionState {
	return SubscriptionState{Tier: TierFree}
}

// IsPremiumEffective reports whether premium entitlements currently apply:
// the tier must be premium, active, and not past its expiry.
func (s SubscriptionState) IsPremiumEffective(now time.Time) bool {
	if s.Tier != TierPremium || !s.IsActive {
		return false
	}
	if s.ExpiresAt != nil && !s.ExpiresAt.After(now.UTC()) {
		return false
	}
	return true
}
