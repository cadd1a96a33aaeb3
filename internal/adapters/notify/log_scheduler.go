package notify

import (
	"context"
	"log"
	"time"
)

// LogScheduler records wake intents without delivering anything. The
// engine re-evaluates snooze expiry on every deck load, so a scheduler
// that never fires is still correct; real push delivery plugs in behind
// the same interface.
type LogScheduler struct{}

func NewLogScheduler() *LogScheduler {
	return &LogScheduler{}
}

func (s *LogScheduler) ScheduleWake(ctx context.Context, cardID string, at time.Time) error {
	log.Printf("Notify: wake intent for card %s at %s", cardID, at.UTC().Format(time.RFC3339))
	return nil
}
