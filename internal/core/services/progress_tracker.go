package services

import (
	"time"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

// ProgressTracker owns all mutations of a user's progress record. Scores,
// streaks and points only ever change through RecordCompletion so the
// profile invariants hold after every update.
type ProgressTracker struct {
	clock Clock
}

func NewProgressTracker(clock Clock) *ProgressTracker {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ProgressTracker{clock: clock}
}

// RecordCompletion applies a card completion to the profile:
// the domain score grows by difficulty*2 (clamped to [0,100]), the life
// score is recomputed as the mean of all four domains, points and the
// completion counter accumulate, and the streak advances at calendar-day
// granularity.
func (t *ProgressTracker) RecordCompletion(p *domain.UserProfile, d domain.LifeDomain, difficulty float64, points int) {
	now := t.clock.Now()

	if d.Valid() {
		p.DomainScores[d] = domain.ClampScore(p.DomainScores[d] + difficulty*2)
	}
	p.RecomputeLifeScore()

	if points > 0 {
		p.LifePoints += points
	}
	p.TotalCardsCompleted++

	t.advanceStreak(p, now)

	p.UpdatedAt = now.UTC()
}

// advanceStreak updates the consecutive-day counters. The already-counted-
// today check must come before the yesterday check: multiple completions
// on the same calendar day must not inflate the streak.
func (t *ProgressTracker) advanceStreak(p *domain.UserProfile, now time.Time) {
	today := domain.CalendarDate(now)

	switch {
	case p.LastActiveDate != nil && p.LastActiveDate.Equal(today):
		// Already counted today.
	case p.LastActiveDate != nil && p.LastActiveDate.Equal(today.AddDate(0, 0, -1)):
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}

	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	p.LastActiveDate = &today
}
