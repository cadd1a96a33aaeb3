package services_test

import (
	"testing"
	"time"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
	"github.com/lifedeck/coaching-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestSubscriptionGate_Entitlements(t *testing.T) {
	gate := services.NewSubscriptionGate()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Free tier gets the bounded deck and no AI", func(t *testing.T) {
		ents := gate.Entitlements(domain.FreeSubscription(), now)

		assert.Equal(t, services.FreeDailyCardLimit, ents.MaxDailyCards)
		assert.False(t, ents.AIPersonalization)
		assert.False(t, ents.UnlimitedCards)
	})

	t.Run("Premium gets the full capability set", func(t *testing.T) {
		sub := domain.SubscriptionState{Tier: domain.TierPremium, IsActive: true}

		ents := gate.Entitlements(sub, now)

		assert.Equal(t, services.PremiumCardCap, ents.MaxDailyCards)
		assert.True(t, ents.AIPersonalization)
		assert.True(t, ents.UnlimitedCards)
	})

	t.Run("Expired premium degrades to free entitlements", func(t *testing.T) {
		expired := now.Add(-time.Hour)
		sub := domain.SubscriptionState{Tier: domain.TierPremium, IsActive: true, ExpiresAt: &expired}

		ents := gate.Entitlements(sub, now)

		assert.Equal(t, services.FreeDailyCardLimit, ents.MaxDailyCards)
		assert.False(t, ents.AIPersonalization)
	})

	t.Run("Inactive premium degrades to free entitlements", func(t *testing.T) {
		sub := domain.SubscriptionState{Tier: domain.TierPremium, IsActive: false}

		ents := gate.Entitlements(sub, now)

		assert.Equal(t, services.FreeDailyCardLimit, ents.MaxDailyCards)
		assert.False(t, ents.AIPersonalization)
	})
}
