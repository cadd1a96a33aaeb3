package services_test

import (
	"testing"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
	"github.com/lifedeck/coaching-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestSubscriptionService(t *testing.T) {
	t.Run("Default: Unknown user is free tier", func(t *testing.T) {
		svc := services.NewSubscriptionService()

		assert.Equal(t, domain.FreeSubscription(), svc.Current("nobody"))
	})

	t.Run("Success: Pushed state is returned as-is", func(t *testing.T) {
		svc := services.NewSubscriptionService()
		state := domain.SubscriptionState{Tier: domain.TierPremium, IsActive: true}

		assert.NoError(t, svc.Set("u1", state))
		assert.Equal(t, state, svc.Current("u1"))
	})

	t.Run("Success: A later push replaces the previous state", func(t *testing.T) {
		svc := services.NewSubscriptionService()
		_ = svc.Set("u1", domain.SubscriptionState{Tier: domain.TierPremium, IsActive: true})

		_ = svc.Set("u1", domain.SubscriptionState{Tier: domain.TierPremium, IsActive: false})

		assert.False(t, svc.Current("u1").IsActive)
	})

	t.Run("Error: Unknown tier is rejected", func(t *testing.T) {
		svc := services.NewSubscriptionService()

		err := svc.Set("u1", domain.SubscriptionState{Tier: "gold", IsActive: true})

		assert.ErrorIs(t, err, domain.ErrInvalidTier)
		assert.Equal(t, domain.FreeSubscription(), svc.Current("u1"))
	})
}
