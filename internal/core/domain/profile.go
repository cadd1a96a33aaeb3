package domain

import (
	"errors"
	"time"
)

var (
	ErrProfileNotFound = errors.New("user profile not found")
)

const (
	MinDomainScore = 0.0
	MaxDomainScore = 100.0
)

// UserProfile is the single canonical progress record for a user. It is
// mutated only through the progress tracker; everything else receives
// copies or reads through named operations.
type UserProfile struct {
	UserID              string                 `json:"user_id" db:"user_id"`
	DomainScores        map[LifeDomain]float64 `json:"domain_scores"`
	LifeScore           float64                `json:"life_score" db:"life_score"`
	CurrentStreak       int                    `json:"current_streak" db:"current_streak"`
	LongestStreak       int                    `json:"longest_streak" db:"longest_streak"`
	LifePoints          int                    `json:"life_points" db:"life_points"`
	TotalCardsCompleted int                    `json:"total_cards_completed" db:"total_cards_completed"`
	LastActiveDate      *time.Time             `json:"last_active_date,omitempty" db:"last_active_date"`
	Achievements        []Achievement          `json:"achievements"`
	CreatedAt           time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at" db:"updated_at"`
}

// NewUserProfile creates the all-zero progress record minted once at
// account creation, seeded with the fixed achievement catalog.
func NewUserProfile(userID string, now time.Time) *UserProfile {
	scores := make(map[LifeDomain]float64, 4)
	for _, d := range AllDomains() {
		scores[d] = 0
	}
	ts := now.UTC()
	return &UserProfile{
		UserID:       userID,
		DomainScores: scores,
		Achievements: DefaultAchievementCatalog(),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

// Score returns the current score for a domain, zero for unknown domains.
func (p *UserProfile) Score(d LifeDomain) float64 {
	return p.DomainScores[d]
}

// RecomputeLifeScore refreshes the aggregate as the arithmetic mean of the
// four domain scores. The aggregate is never stored independently of the
// parts; every mutation path must call this.
func (p *UserProfile) RecomputeLifeScore() {
	var sum float64
	for _, d := range AllDomains() {
		sum += p.DomainScores[d]
	}
	p.LifeScore = sum / float64(len(AllDomains()))
}

// Clone returns a deep copy safe to hand to observers and the snapshot
// worker while the original keeps mutating.
func (p *UserProfile) Clone() *UserProfile {
	cp := *p
	cp.DomainScores = make(map[LifeDomain]float64, len(p.DomainScores))
	for k, v := range p.DomainScores {
		cp.DomainScores[k] = v
	}
	cp.Achievements = append([]Achievement(nil), p.Achievements...)
	if p.LastActiveDate != nil {
		d := *p.LastActiveDate
		cp.LastActiveDate = &d
	}
	return &cp
}

func ClampScore(score float64) float64 {
	if score < MinDomainScore {
		return MinDomainScore
	}
	if score > MaxDomainScore {
		return MaxDomainScore
	}
	return score
}

// CalendarDate truncates an instant to UTC day granularity. Streak
// arithmetic only ever compares calendar dates, never wall-clock hours.
func CalendarDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func SameCalendarDay(a, b time.Time) bool {
	return CalendarDate(a).Equal(CalendarDate(b))
}
