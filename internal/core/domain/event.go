package domain

import (
	"time"

	"github.com/google/uuid"
)

type CardAction string

const (
	ActionComplete CardAction = "complete"
	ActionDismiss  CardAction = "dismiss"
	ActionSnooze   CardAction = "snooze"
)

// CardActionEvent is the append-only analytics record behind every gesture
// that changed a card's state. Dismissed cards are not kept as card rows,
// so this is the only durable trace of a dismissal.
type CardActionEvent struct {
	ID         string     `json:"id" db:"id"`
	UserID     string     `json:"user_id" db:"user_id"`
	CardID     string     `json:"card_id" db:"card_id"`
	Domain     LifeDomain `json:"domain" db:"domain"`
	Action     CardAction `json:"action" db:"action"`
	Points     int        `json:"points" db:"points"`
	OccurredAt time.Time  `json:"occurred_at" db:"occurred_at"`
}

func NewCardActionEvent(userID string, card *CoachingCard, action CardAction, points int, now time.Time) *CardActionEvent {
	return &CardActionEvent{
		ID:         uuid.NewString(),
		UserID:     userID,
		CardID:     card.ID,
		Domain:     card.Domain,
		Action:     action,
		Points:     points,
		OccurredAt: now.UTC(),
	}
}
