package services

import (
	"time"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

const (
	// FreeDailyCardLimit bounds the free-tier daily deck.
	FreeDailyCardLimit = 5

	// PremiumCardCap is the practical ceiling for "unlimited" decks so
	// generation cost stays bounded.
	PremiumCardCap = 50
)

// Entitlements is the capability set a subscription tier unlocks.
type Entitlements struct {
	MaxDailyCards     int  `json:"max_daily_cards"`
	AIPersonalization bool `json:"ai_personalization"`
	UnlimitedCards    bool `json:"unlimited_cards"`
}

// SubscriptionGate maps subscription state to entitlements. It is a total
// function over the tier domain: no side effects, no errors. A lapsed or
// expired premium subscription degrades to the free entitlements.
type SubscriptionGate struct{}

func NewSubscriptionGate() *SubscriptionGate {
	return &SubscriptionGate{}
}

func (g *SubscriptionGate) Entitlements(sub domain.SubscriptionState, now time.Time) Entitlements {
	if sub.IsPremiumEffective(now) {
		return Entitlements{
			MaxDailyCards:     PremiumCardCap,
			AIPersonalization: true,
			UnlimitedCards:    true,
		}
	}
	return Entitlements{
		MaxDailyCards:     FreeDailyCardLimit,
		AIPersonalization: false,
		UnlimitedCards:    false,
	}
}
