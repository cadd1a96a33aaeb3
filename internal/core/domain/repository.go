package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrDeckNotFound = errors.New("no stored deck for user")
)

// ProfileRepository persists whole profile snapshots. Save must replace
// the entire record (last-writer-wins at profile granularity) so a lagging
// background save can never corrupt individual fields.
type ProfileRepository interface {
	Load(ctx context.Context, userID string) (*UserProfile, error)
	Save(ctx context.Context, profile *UserProfile) error
}

// DeckRepository persists the active deck (pending and snoozed cards) so
// snoozes survive process restarts. SaveDeck replaces the user's stored
// deck wholesale.
type DeckRepository interface {
	SaveDeck(ctx context.Context, userID string, deckDate time.Time, cards []*CoachingCard) error
	LoadDeck(ctx context.Context, userID string) (time.Time, []*CoachingCard, error)
}

// TemplateCatalog is the read-only pool of card templates, banded by
// domain score range. The engine never mutates it.
type TemplateCatalog interface {
	GetTemplates(ctx context.Context, domain LifeDomain, band ScoreBand) ([]*CardTemplate, error)
}

// EventRepository records card action events for analytics, append-only.
type EventRepository interface {
	Append(ctx context.Context, event *CardActionEvent) error
	ListByUserID(ctx context.Context, userID string, since time.Time) ([]*CardActionEvent, error)
}

// NotificationScheduler expresses wake-up intent for snoozed cards.
// Correctness never depends on the notification firing: snooze expiry is
// re-evaluated against the clock on every deck load.
type NotificationScheduler interface {
	ScheduleWake(ctx context.Context, cardID string, at time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
