package domain_test

import (
	"testing"
	"time"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func newPendingCard(t *testing.T) *domain.CoachingCard {
	t.Helper()
	tpl := &domain.CardTemplate{
		Title:      "Take a 10-minute walk",
		ActionText: "Step outside and walk for ten minutes.",
		Domain:     domain.DomainHealth,
		Band:       domain.BandMid,
		Priority:   domain.PriorityMedium,
		Duration:   domain.DurationMedium,
		Tags:       []string{"movement"},
	}
	return domain.NewCardFromTemplate(tpl, 2.0, 12, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
}

func TestNewCardFromTemplate(t *testing.T) {
	t.Run("Success: Materializes pending card with fresh ID", func(t *testing.T) {
		card := newPendingCard(t)

		assert.NotEmpty(t, card.ID)
		assert.Equal(t, "Take a 10-minute walk", card.Title)
		assert.Equal(t, domain.DomainHealth, card.Domain)
		assert.Equal(t, domain.CardStatePending, card.State)
		assert.Equal(t, 2.0, card.Difficulty)
		assert.Equal(t, 12, card.Points)
		assert.Nil(t, card.CompletedAt)
		assert.Nil(t, card.SnoozedUntil)
		assert.False(t, card.AIGenerated)
	})

	t.Run("Safety: Tags slice is isolated from the template", func(t *testing.T) {
		tpl := &domain.CardTemplate{
			Title:      "T",
			ActionText: "A",
			Domain:     domain.DomainFinance,
			Tags:       []string{"a", "b"},
		}
		card := domain.NewCardFromTemplate(tpl, 1.0, 8, time.Now())

		tpl.Tags[0] = "mutated"

		assert.Equal(t, "a", card.Tags[0], "Card state leaked from template!")
	})

	t.Run("Success: Two materializations get distinct IDs", func(t *testing.T) {
		a := newPendingCard(t)
		b := newPendingCard(t)
		assert.NotEqual(t, a.ID, b.ID)
	})
}

func TestCoachingCard_Lifecycle(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("Success: Complete sets terminal state and timestamp", func(t *testing.T) {
		card := newPendingCard(t)

		err := card.Complete(now)

		assert.NoError(t, err)
		assert.Equal(t, domain.CardStateCompleted, card.State)
		assert.NotNil(t, card.CompletedAt)
		assert.Equal(t, now, *card.CompletedAt)
		assert.True(t, card.Terminal())
	})

	t.Run("Success: Dismiss sets terminal state without completion time", func(t *testing.T) {
		card := newPendingCard(t)

		err := card.Dismiss(now)

		assert.NoError(t, err)
		assert.Equal(t, domain.CardStateDismissed, card.State)
		assert.Nil(t, card.CompletedAt)
		assert.True(t, card.Terminal())
	})

	t.Run("Success: Snooze stores wake time", func(t *testing.T) {
		card := newPendingCard(t)

		err := card.Snooze(now, 30*time.Minute)

		assert.NoError(t, err)
		assert.Equal(t, domain.CardStateSnoozed, card.State)
		assert.NotNil(t, card.SnoozedUntil)
		assert.Equal(t, now.Add(30*time.Minute), *card.SnoozedUntil)
		assert.False(t, card.Terminal())
	})

	t.Run("Success: Zero duration falls back to default snooze", func(t *testing.T) {
		card := newPendingCard(t)

		err := card.Snooze(now, 0)

		assert.NoError(t, err)
		assert.Equal(t, now.Add(domain.DefaultSnoozeDuration), *card.SnoozedUntil)
	})

	t.Run("Error: Completed card cannot be snoozed", func(t *testing.T) {
		card := newPendingCard(t)
		_ = card.Complete(now)

		err := card.Snooze(now, time.Hour)

		assert.Equal(t, domain.ErrCardNotPending, err)
		assert.Equal(t, domain.CardStateCompleted, card.State)
	})

	t.Run("Error: Dismissed card cannot be completed", func(t *testing.T) {
		card := newPendingCard(t)
		_ = card.Dismiss(now)

		err := card.Complete(now)

		assert.Equal(t, domain.ErrCardNotPending, err)
	})

	t.Run("Error: Double complete is rejected", func(t *testing.T) {
		card := newPendingCard(t)
		_ = card.Complete(now)

		err := card.Complete(now)

		assert.Equal(t, domain.ErrCardNotPending, err)
	})
}

func TestCoachingCard_Wake(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("Success: Wake after the snooze window elapses", func(t *testing.T) {
		card := newPendingCard(t)
		_ = card.Snooze(now, time.Hour)

		err := card.Wake(now.Add(time.Hour))

		assert.NoError(t, err)
		assert.Equal(t, domain.CardStatePending, card.State)
		assert.Nil(t, card.SnoozedUntil)
	})

	t.Run("Error: Waking early is rejected", func(t *testing.T) {
		card := newPendingCard(t)
		_ = card.Snooze(now, time.Hour)

		err := card.Wake(now.Add(59 * time.Minute))

		assert.Equal(t, domain.ErrSnoozeNotDue, err)
		assert.Equal(t, domain.CardStateSnoozed, card.State)
	})

	t.Run("Error: Waking a pending card is rejected", func(t *testing.T) {
		card := newPendingCard(t)

		err := card.Wake(now)

		assert.Equal(t, domain.ErrCardNotSnoozed, err)
	})

	t.Run("SnoozeElapsed: Exact boundary counts as due", func(t *testing.T) {
		card := newPendingCard(t)
		_ = card.Snooze(now, time.Hour)

		assert.False(t, card.SnoozeElapsed(now.Add(time.Hour-time.Second)))
		assert.True(t, card.SnoozeElapsed(now.Add(time.Hour)))
	})
}

func TestCoachingCard_CompletionPoints(t *testing.T) {
	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	morning := time.Date(2026, 3, 10, 7, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		difficulty float64
		premium    bool
		at         time.Time
		want       int
	}{
		{"Base: difficulty 1.0 at noon", 1.0, false, noon, 12},
		{"Base: difficulty 2.0 at noon", 2.0, false, noon, 14},
		{"Floor: difficulty 2.9 rounds down", 2.9, false, noon, 15},
		{"Max: difficulty 3.0 at noon", 3.0, false, noon, 16},
		{"Premium bonus applies", 2.0, true, noon, 19},
		{"Morning bonus applies", 2.0, false, morning, 17},
		{"Morning + premium stack", 2.0, true, morning, 22},
		{"Boundary: 06:00 counts as morning", 1.0, false, time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC), 15},
		{"Boundary: 09:59 counts as morning", 1.0, false, time.Date(2026, 3, 10, 9, 59, 59, 0, time.UTC), 15},
		{"Boundary: 10:00 is not morning", 1.0, false, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), 12},
		{"Boundary: 05:59 is not morning", 1.0, false, time.Date(2026, 3, 10, 5, 59, 59, 0, time.UTC), 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := newPendingCard(t)
			card.Difficulty = tt.difficulty
			card.IsPremium = tt.premium

			assert.Equal(t, tt.want, card.CompletionPoints(tt.at))
		})
	}
}

func TestCoachingCard_Clone(t *testing.T) {
	t.Run("Safety: Clone is fully isolated", func(t *testing.T) {
		card := newPendingCard(t)
		_ = card.Snooze(time.Now(), time.Hour)

		clone := card.Clone()
		clone.Title = "Changed"
		clone.Tags[0] = "changed"
		*clone.SnoozedUntil = clone.SnoozedUntil.Add(time.Hour)

		assert.Equal(t, "Take a 10-minute walk", card.Title)
		assert.Equal(t, "movement", card.Tags[0])
		assert.NotEqual(t, *card.SnoozedUntil, *clone.SnoozedUntil)
	})
}
