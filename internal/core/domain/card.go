package domain

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCardNotFound   = errors.New("card not found")
	ErrCardNotPending = errors.New("card is not in pending state")
	ErrCardNotSnoozed = errors.New("card is not snoozed")
	ErrSnoozeNotDue   = errors.New("snooze period has not elapsed yet")
	ErrInvalidDomain  = errors.New("invalid life domain")
)

type LifeDomain string

const (
	DomainHealth       LifeDomain = "health"
	DomainFinance      LifeDomain = "finance"
	DomainProductivity LifeDomain = "productivity"
	DomainMindfulness  LifeDomain = "mindfulness"
)

// AllDomains returns the four tracked life domains in canonical order.
func AllDomains() []LifeDomain {
	return []LifeDomain{DomainHealth, DomainFinance, DomainProductivity, DomainMindfulness}
}

func (d LifeDomain) Valid() bool {
	switch d {
	case DomainHealth, DomainFinance, DomainProductivity, DomainMindfulness:
		return true
	}
	return false
}

type CardPriority string

const (
	PriorityLow      CardPriority = "low"
	PriorityMedium   CardPriority = "medium"
	PriorityHigh     CardPriority = "high"
	PriorityCritical CardPriority = "critical"
)

type CardDuration string

const (
	DurationQuick    CardDuration = "quick"    // ~2 min
	DurationShort    CardDuration = "short"    // ~5 min
	DurationMedium   CardDuration = "medium"   // ~10 min
	DurationExtended CardDuration = "extended" // ~15 min
)

func (d CardDuration) Minutes() int {
	switch d {
	case DurationQuick:
		return 2
	case DurationShort:
		return 5
	case DurationExtended:
		return 15
	default:
		return 10
	}
}

type CardState string

const (
	CardStatePending   CardState = "pending"
	CardStateCompleted CardState = "completed"
	CardStateDismissed CardState = "dismissed"
	CardStateSnoozed   CardState = "snoozed"
)

const (
	// DefaultSnoozeDuration is applied when a snooze gesture carries no
	// explicit duration.
	DefaultSnoozeDuration = 2 * time.Hour

	completionBasePoints  = 10
	premiumBonusPoints    = 5
	morningBonusPoints    = 3
	morningWindowStart    = 6
	morningWindowEnd      = 10
)

type CoachingCard struct {
	ID           string       `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	Domain       LifeDomain   `json:"domain" db:"domain"`
	ActionText   string       `json:"action_text" db:"action_text"`
	Difficulty   float64      `json:"difficulty" db:"difficulty"`
	Points       int          `json:"points" db:"points"`
	Priority     CardPriority `json:"priority" db:"priority"`
	Duration     CardDuration `json:"duration" db:"duration"`
	IsPremium    bool         `json:"is_premium" db:"is_premium"`
	AIGenerated  bool         `json:"ai_generated" db:"ai_generated"`
	State        CardState    `json:"state" db:"state"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty" db:"completed_at"`
	SnoozedUntil *time.Time   `json:"snoozed_until,omitempty" db:"snoozed_until"`
	Tags         []string     `json:"tags,omitempty" db:"tags"`
	Bookmarked   bool         `json:"bookmarked" db:"bookmarked"`
	UserNote     string       `json:"user_note,omitempty" db:"user_note"`
}

// NewCardFromTemplate materializes a static template into a live card
// instance. Difficulty and points come from the generator, which applies
// band-bounded jitter before calling this.
func NewCardFromTemplate(tpl *CardTemplate, difficulty float64, points int, now time.Time) *CoachingCard {
	return &CoachingCard{
		ID:         uuid.NewString(),
		Title:      tpl.Title,
		Domain:     tpl.Domain,
		ActionText: tpl.ActionText,
		Difficulty: difficulty,
		Points:     points,
		Priority:   tpl.Priority,
		Duration:   tpl.Duration,
		IsPremium:  tpl.IsPremium,
		State:      CardStatePending,
		CreatedAt:  now.UTC(),
		Tags:       append([]string(nil), tpl.Tags...),
	}
}

// Complete marks a pending card as completed. The card leaves the active
// deck; a completed card can never be snoozed again.
func (c *CoachingCard) Complete(now time.Time) error {
	if c.State != CardStatePending {
		return ErrCardNotPending
	}
	ts := now.UTC()
	c.State = CardStateCompleted
	c.CompletedAt = &ts
	c.SnoozedUntil = nil
	return nil
}

// Dismiss marks a pending card as dismissed. No scoring is attached; the
// action itself is tracked separately for analytics.
func (c *CoachingCard) Dismiss(now time.Time) error {
	if c.State != CardStatePending {
		return ErrCardNotPending
	}
	c.State = CardStateDismissed
	c.CompletedAt = nil
	c.SnoozedUntil = nil
	return nil
}

// Snooze defers a pending card for the given duration. Zero or negative
// durations fall back to the default.
func (c *CoachingCard) Snooze(now time.Time, d time.Duration) error {
	if c.State != CardStatePending {
		return ErrCardNotPending
	}
	if d <= 0 {
		d = DefaultSnoozeDuration
	}
	until := now.UTC().Add(d)
	c.State = CardStateSnoozed
	c.SnoozedUntil = &until
	return nil
}

// SnoozeElapsed reports whether a snoozed card is due to re-enter the deck.
func (c *CoachingCard) SnoozeElapsed(now time.Time) bool {
	return c.State == CardStateSnoozed && c.SnoozedUntil != nil && !c.SnoozedUntil.After(now.UTC())
}

// Wake returns a snoozed card to the pending state once its snooze window
// has elapsed. Waking early is rejected so a card never reappears before
// its time.
func (c *CoachingCard) Wake(now time.Time) error {
	if c.State != CardStateSnoozed {
		return ErrCardNotSnoozed
	}
	if c.SnoozedUntil != nil && c.SnoozedUntil.After(now.UTC()) {
		return ErrSnoozeNotDue
	}
	c.State = CardStatePending
	c.SnoozedUntil = nil
	return nil
}

// CompletionPoints computes the reward for completing this card at the
// given instant: base 10, plus floor(difficulty*2), plus 5 for premium
// cards, plus 3 for early-morning completions (06:00-09:59 local UTC).
func (c *CoachingCard) CompletionPoints(at time.Time) int {
	points := completionBasePoints + int(math.Floor(c.Difficulty*2))
	if c.IsPremium {
		points += premiumBonusPoints
	}
	hour := at.UTC().Hour()
	if hour >= morningWindowStart && hour < morningWindowEnd {
		points += morningBonusPoints
	}
	return points
}

// Clone returns a copy safe to hand across the service boundary.
func (c *CoachingCard) Clone() *CoachingCard {
	cp := *c
	cp.Tags = append([]string(nil), c.Tags...)
	if c.CompletedAt != nil {
		t := *c.CompletedAt
		cp.CompletedAt = &t
	}
	if c.SnoozedUntil != nil {
		t := *c.SnoozedUntil
		cp.SnoozedUntil = &t
	}
	return &cp
}

// Terminal reports whether the card has reached a final state.
func (c *CoachingCard) Terminal() bool {
	return c.State == CardStateCompleted || c.State == CardStateDismissed
}
