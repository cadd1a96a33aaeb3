package services_test

import (
	"testing"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
	"github.com/lifedeck/coaching-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestAchievementEngine_Check(t *testing.T) {
	t.Run("Success: Crossing a threshold unlocks exactly that achievement", func(t *testing.T) {
		clock := newFakeClock()
		engine := services.NewAchievementEngine(clock)
		p := domain.NewUserProfile("u1", clock.Now())
		p.LifePoints = 12

		unlocked := engine.Check(p)

		assert.Len(t, unlocked, 1)
		assert.Equal(t, "first-step", unlocked[0].ID)
		assert.True(t, unlocked[0].IsUnlocked)
		assert.Equal(t, clock.Now(), *unlocked[0].UnlockedAt)
	})

	t.Run("Success: A large jump unlocks every crossed threshold at once", func(t *testing.T) {
		clock := newFakeClock()
		engine := services.NewAchievementEngine(clock)
		p := domain.NewUserProfile("u1", clock.Now())
		p.LifePoints = 450

		unlocked := engine.Check(p)

		ids := make(map[string]bool)
		for _, a := range unlocked {
			ids[a.ID] = true
		}
		assert.True(t, ids["first-step"])
		assert.True(t, ids["getting-going"])
		assert.True(t, ids["momentum"])
		assert.True(t, ids["committed"])
		assert.False(t, ids["life-architect"], "1000-point threshold not reached")
	})

	t.Run("Idempotency: Re-checking unlocks nothing new", func(t *testing.T) {
		clock := newFakeClock()
		engine := services.NewAchievementEngine(clock)
		p := domain.NewUserProfile("u1", clock.Now())
		p.LifePoints = 60

		first := engine.Check(p)
		second := engine.Check(p)

		assert.NotEmpty(t, first)
		assert.Empty(t, second)
	})

	t.Run("Monotonic: Unlocked achievements never revert", func(t *testing.T) {
		clock := newFakeClock()
		engine := services.NewAchievementEngine(clock)
		p := domain.NewUserProfile("u1", clock.Now())
		p.LifePoints = 60
		engine.Check(p)

		// Points cannot actually decrease in production, but even if the
		// record were corrupted the unlock state must hold.
		p.LifePoints = 0
		engine.Check(p)

		var firstStep *domain.Achievement
		for i := range p.Achievements {
			if p.Achievements[i].ID == "first-step" {
				firstStep = &p.Achievements[i]
			}
		}
		assert.NotNil(t, firstStep)
		assert.True(t, firstStep.IsUnlocked)
	})

	t.Run("No-op: Below every threshold nothing unlocks", func(t *testing.T) {
		clock := newFakeClock()
		engine := services.NewAchievementEngine(clock)
		p := domain.NewUserProfile("u1", clock.Now())
		p.LifePoints = 9

		assert.Empty(t, engine.Check(p))
	})

	t.Run("Boundary: Exactly the required points unlocks", func(t *testing.T) {
		clock := newFakeClock()
		engine := services.NewAchievementEngine(clock)
		p := domain.NewUserProfile("u1", clock.Now())
		p.LifePoints = 10

		unlocked := engine.Check(p)

		assert.Len(t, unlocked, 1)
		assert.Equal(t, "first-step", unlocked[0].ID)
	})
}
