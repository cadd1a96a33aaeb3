package services

import (
	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

// AchievementEngine evaluates the fixed achievement catalog against a
// profile. Unlock conditions are independent and monotonic in life points,
// so evaluation order is irrelevant and re-checking is idempotent.
type AchievementEngine struct {
	clock Clock
}

func NewAchievementEngine(clock Clock) *AchievementEngine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &AchievementEngine{clock: clock}
}

// Check unlocks every still-locked achievement whose points threshold the
// profile now meets, and returns the newly unlocked ones. A check with no
// qualifying achievements changes nothing.
func (e *AchievementEngine) Check(p *domain.UserProfile) []domain.Achievement {
	now := e.clock.Now()

	var unlocked []domain.Achievement
	for i := range p.Achievements {
		a := &p.Achievements[i]
		if a.IsUnlocked || p.LifePoints < a.PointsRequired {
			continue
		}
		if a.Unlock(now) {
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked
}
