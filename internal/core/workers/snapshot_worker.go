package workers

import (
	"context"
	"log"
	"time"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

type ProfileStore interface {
	Save(ctx context.Context, profile *domain.UserProfile) error
}

type DeckStore interface {
	SaveDeck(ctx context.Context, userID string, deckDate time.Time, cards []*domain.CoachingCard) error
}

type snapshotJob struct {
	profile  *domain.UserProfile
	deckDate time.Time
	cards    []*domain.CoachingCard
}

// SnapshotWorker persists profile/deck snapshots in the background. Saves
// are fire-and-forget from the engine's perspective: the in-memory state
// is authoritative the moment a transition completes, and each save
// replaces the whole record so a lagging write can never leave partial
// fields behind.
type SnapshotWorker struct {
	profiles ProfileStore
	decks    DeckStore
	jobs     chan snapshotJob
}

func NewSnapshotWorker(profiles ProfileStore, decks DeckStore) *SnapshotWorker {
	return &SnapshotWorker{
		profiles: profiles,
		decks:    decks,
		jobs:     make(chan snapshotJob, 100),
	}
}

func (w *SnapshotWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Snapshot Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Snapshot Worker shutting down...")
				return
			}
		}
	}()
}

// EnqueueSnapshot implements services.SnapshotSink. A full queue drops the
// job rather than blocking a gesture; the next transition enqueues a
// fresher snapshot anyway.
func (w *SnapshotWorker) EnqueueSnapshot(profile *domain.UserProfile, deckDate time.Time, cards []*domain.CoachingCard) {
	select {
	case w.jobs <- snapshotJob{profile: profile, deckDate: deckDate, cards: cards}:
	default:
		log.Printf("Snapshot Worker queue full! Dropping snapshot for user %s", profile.UserID)
	}
}

func (w *SnapshotWorker) processJob(ctx context.Context, job snapshotJob) {
	saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := w.profiles.Save(saveCtx, job.profile); err != nil {
		log.Printf("Snapshot Worker: failed to save profile for %s: %v", job.profile.UserID, err)
	}

	if err := w.decks.SaveDeck(saveCtx, job.profile.UserID, job.deckDate, job.cards); err != nil {
		log.Printf("Snapshot Worker: failed to save deck for %s: %v", job.profile.UserID, err)
	}
}
