package domain

import "time"

// Achievement is one entry of the fixed, non-user-editable catalog.
// Category is empty for general achievements. Once unlocked it never
// reverts, and UnlockedAt is written exactly once.
type Achievement struct {
	ID             string     `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Description    string     `json:"description" db:"description"`
	PointsRequired int        `json:"points_required" db:"points_required"`
	Category       LifeDomain `json:"category,omitempty" db:"category"`
	IsUnlocked     bool       `json:"is_unlocked" db:"is_unlocked"`
	UnlockedAt     *time.Time `json:"unlocked_at,omitempty" db:"unlocked_at"`
}

// Unlock flips the achievement exactly once. Re-unlocking is a no-op so
// repeated checks stay idempotent.
func (a *Achievement) Unlock(now time.Time) bool {
	if a.IsUnlocked {
		return false
	}
	ts := now.UTC()
	a.IsUnlocked = true
	a.UnlockedAt = &ts
	return true
}

// DefaultAchievementCatalog returns a fresh copy of the fixed catalog.
// Each profile carries its own copy so unlock state stays per-user.
func DefaultAchievementCatalog() []Achievement {
	return []Achievement{
		{ID: "first-step", Title: "First Step", Description: "Earn your first 10 life points", PointsRequired: 10},
		{ID: "getting-going", Title: "Getting Going", Description: "Reach 50 life points", PointsRequired: 50},
		{ID: "momentum", Title: "Momentum", Description: "Reach 150 life points", PointsRequired: 150},
		{ID: "committed", Title: "Committed", Description: "Reach 400 life points", PointsRequired: 400},
		{ID: "life-architect", Title: "Life Architect", Description: "Reach 1000 life points", PointsRequired: 1000},
		{ID: "grand-master", Title: "Grand Master", Description: "Reach 5000 life points", PointsRequired: 5000},
		{ID: "healthy-habits", Title: "Healthy Habits", Description: "Earn 200 life points with health coaching active", PointsRequired: 200, Category: DomainHealth},
		{ID: "money-minded", Title: "Money Minded", Description: "Earn 200 life points with finance coaching active", PointsRequired: 200, Category: DomainFinance},
		{ID: "deep-worker", Title: "Deep Worker", Description: "Earn 200 life points with productivity coaching active", PointsRequired: 200, Category: DomainProductivity},
		{ID: "present-mind", Title: "Present Mind", Description: "Earn 200 life points with mindfulness coaching active", PointsRequired: 200, Category: DomainMindfulness},
	}
}
