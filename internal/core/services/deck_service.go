package services

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

// SwipeThreshold is the minimum displacement, in points of translation,
// before a drag resolves to a gesture. Anything below it must cause no
// state transition.
const SwipeThreshold = 80.0

type SwipeDirection string

const (
	SwipeNone  SwipeDirection = "none"
	SwipeRight SwipeDirection = "right"
	SwipeLeft  SwipeDirection = "left"
	SwipeUp    SwipeDirection = "up"
	SwipeDown  SwipeDirection = "down"
)

// ResolveSwipe maps raw drag displacement to a direction. The dominant
// axis wins; ties go to the horizontal axis.
func ResolveSwipe(dx, dy float64) SwipeDirection {
	if math.Abs(dx) < SwipeThreshold && math.Abs(dy) < SwipeThreshold {
		return SwipeNone
	}
	if math.Abs(dx) >= math.Abs(dy) {
		if dx > 0 {
			return SwipeRight
		}
		return SwipeLeft
	}
	if dy > 0 {
		return SwipeDown
	}
	return SwipeUp
}

// SnapshotSink receives fire-and-forget persistence requests. The
// in-memory state stays authoritative; a lagging save is acceptable
// because snapshots replace whole records.
type SnapshotSink interface {
	EnqueueSnapshot(profile *domain.UserProfile, deckDate time.Time, cards []*domain.CoachingCard)
}

// GestureResult reports what a swipe did. Applied is false for
// sub-threshold drags and for transitions attempted on cards that are not
// in the expected source state; both are silent no-ops.
type GestureResult struct {
	Applied       bool                 `json:"applied"`
	Action        domain.CardAction    `json:"action,omitempty"`
	PointsAwarded int                  `json:"points_awarded,omitempty"`
	Unlocked      []domain.Achievement `json:"unlocked,omitempty"`
	LifePoints    int                  `json:"life_points"`
	CurrentStreak int                  `json:"current_streak"`
}

type deckSession struct {
	profile    *domain.UserProfile
	deckDate   time.Time // UTC calendar date of the current deck
	active     []*domain.CoachingCard
	snoozed    []*domain.CoachingCard
	cancelGen  context.CancelFunc
	generation int
}

// DeckService owns the canonical in-memory deck and profile per user and
// drives every card through its state machine. All transitions execute as
// atomic synchronous units under one lock; the only asynchronous boundary
// is AI personalization inside the generator.
type DeckService struct {
	profiles  domain.ProfileRepository
	decks     domain.DeckRepository
	events    domain.EventRepository      // optional
	scheduler domain.NotificationScheduler // optional
	generator *CardGenerator
	progress  *ProgressTracker
	unlocks   *AchievementEngine
	snapshots SnapshotSink // optional
	clock     Clock

	mu       sync.Mutex
	sessions map[string]*deckSession
}

type DeckServiceDeps struct {
	Profiles  domain.ProfileRepository
	Decks     domain.DeckRepository
	Events    domain.EventRepository
	Scheduler domain.NotificationScheduler
	Generator *CardGenerator
	Progress  *ProgressTracker
	Unlocks   *AchievementEngine
	Snapshots SnapshotSink
	Clock     Clock
}

func NewDeckService(deps DeckServiceDeps) *DeckService {
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	return &DeckService{
		profiles:  deps.Profiles,
		decks:     deps.Decks,
		events:    deps.Events,
		scheduler: deps.Scheduler,
		generator: deps.Generator,
		progress:  deps.Progress,
		unlocks:   deps.Unlocks,
		snapshots: deps.Snapshots,
		clock:     deps.Clock,
	}
}

// LoadDeck returns the user's active deck for today, generating a fresh
// one when none exists or the stored deck is from a previous day. Snooze
// expiry is re-evaluated here against the clock on every call: a fired
// notification is never required for a snoozed card to come back.
func (s *DeckService) LoadDeck(ctx context.Context, userID string, focus []domain.LifeDomain, sub domain.SubscriptionState) ([]*domain.CoachingCard, error) {
	return s.loadDeck(ctx, userID, focus, sub, false)
}

// RefreshDeck force-regenerates today's deck, discarding the current one.
// Any personalization call still in flight for the old deck is cancelled
// and its result dropped.
func (s *DeckService) RefreshDeck(ctx context.Context, userID string, focus []domain.LifeDomain, sub domain.SubscriptionState) ([]*domain.CoachingCard, error) {
	return s.loadDeck(ctx, userID, focus, sub, true)
}

func (s *DeckService) loadDeck(ctx context.Context, userID string, focus []domain.LifeDomain, sub domain.SubscriptionState, force bool) ([]*domain.CoachingCard, error) {
	now := s.clock.Now()
	today := domain.CalendarDate(now)

	s.mu.Lock()
	sess, err := s.ensureSessionLocked(ctx, userID)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	// An exhausted deck is not stale: clearing all of today's cards must
	// not mint a fresh deck, or the daily card limit means nothing.
	stale := !sess.deckDate.Equal(today)
	if !force && !stale {
		s.requeueExpiredSnoozesLocked(sess, now)
		s.dropUnentitledLocked(sess, sub, now)
		deck := cloneCards(sess.active)
		s.mu.Unlock()
		return deck, nil
	}

	// A new generation supersedes any in-flight one; stale AI results
	// must never be appended to the deck we are about to build.
	if sess.cancelGen != nil {
		sess.cancelGen()
	}
	genCtx, cancel := context.WithCancel(ctx)
	sess.cancelGen = cancel
	sess.generation++
	gen := sess.generation
	profileCopy := sess.profile.Clone()
	s.mu.Unlock()

	deck, genErr := s.generator.GenerateDailyDeck(genCtx, profileCopy, focus, sub)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.generation != gen {
		// Superseded by a newer refresh while we were generating.
		return cloneCards(sess.active), nil
	}
	if genErr != nil {
		return nil, genErr
	}

	sess.active = deck
	if force {
		// An explicit refresh discards the whole deck, snoozes included.
		sess.snoozed = nil
	}
	sess.deckDate = today
	// Snoozed cards cross the day boundary: one snoozed at 23:00 until
	// 01:00 still comes back exactly once, alongside the new day's deck.
	s.requeueExpiredSnoozesLocked(sess, now)
	s.dropUnentitledLocked(sess, sub, now)
	s.enqueueSnapshotLocked(sess)

	return cloneCards(sess.active), nil
}

// ApplyGesture resolves a drag into a transition and executes it with its
// scoring side effects. Sub-threshold drags and transitions on cards not
// in the pending deck are no-ops: logged, never fatal.
func (s *DeckService) ApplyGesture(ctx context.Context, userID, cardID string, dx, dy float64, sub domain.SubscriptionState) (*GestureResult, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.ensureSessionLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &GestureResult{
		LifePoints:    sess.profile.LifePoints,
		CurrentStreak: sess.profile.CurrentStreak,
	}

	dir := ResolveSwipe(dx, dy)
	if dir == SwipeNone {
		return result, nil
	}

	idx := -1
	for i, c := range sess.active {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx == -1 {
		log.Printf("Deck Service: ignoring %s gesture on card %s not in active deck for user %s", dir, cardID, userID)
		return result, nil
	}
	card := sess.active[idx]

	switch dir {
	case SwipeRight:
		if err := card.Complete(now); err != nil {
			log.Printf("Deck Service: complete rejected for card %s: %v", card.ID, err)
			return result, nil
		}
		points := card.CompletionPoints(now)
		s.progress.RecordCompletion(sess.profile, card.Domain, card.Difficulty, points)
		result.Applied = true
		result.Action = domain.ActionComplete
		result.PointsAwarded = points
		result.Unlocked = s.unlocks.Check(sess.profile)
		sess.active = append(sess.active[:idx], sess.active[idx+1:]...)
		s.recordEvent(ctx, userID, card, domain.ActionComplete, points, now)

	case SwipeLeft:
		if err := card.Dismiss(now); err != nil {
			log.Printf("Deck Service: dismiss rejected for card %s: %v", card.ID, err)
			return result, nil
		}
		result.Applied = true
		result.Action = domain.ActionDismiss
		sess.active = append(sess.active[:idx], sess.active[idx+1:]...)
		s.recordEvent(ctx, userID, card, domain.ActionDismiss, 0, now)

	case SwipeUp, SwipeDown:
		if err := card.Snooze(now, domain.DefaultSnoozeDuration); err != nil {
			log.Printf("Deck Service: snooze rejected for card %s: %v", card.ID, err)
			return result, nil
		}
		result.Applied = true
		result.Action = domain.ActionSnooze
		sess.active = append(sess.active[:idx], sess.active[idx+1:]...)
		sess.snoozed = append(sess.snoozed, card)
		if s.scheduler != nil && card.SnoozedUntil != nil {
			if err := s.scheduler.ScheduleWake(ctx, card.ID, *card.SnoozedUntil); err != nil {
				// Advisory only; deck load re-evaluates expiry anyway.
				log.Printf("Deck Service: wake scheduling failed for card %s: %v", card.ID, err)
			}
		}
		s.recordEvent(ctx, userID, card, domain.ActionSnooze, 0, now)
	}

	result.LifePoints = sess.profile.LifePoints
	result.CurrentStreak = sess.profile.CurrentStreak
	s.enqueueSnapshotLocked(sess)

	return result, nil
}

// UpdateCard sets bookmark state and/or the user note on an active or
// snoozed card.
func (s *DeckService) UpdateCard(ctx context.Context, userID, cardID string, bookmarked *bool, note *string) (*domain.CoachingCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.ensureSessionLocked(ctx, userID)
	if err != nil {
		return nil, err
	}

	card := findCard(sess, cardID)
	if card == nil {
		return nil, domain.ErrCardNotFound
	}

	if bookmarked != nil {
		card.Bookmarked = *bookmarked
	}
	if note != nil {
		card.UserNote = *note
	}
	s.enqueueSnapshotLocked(sess)

	cp := card.Clone()
	return cp, nil
}

// Progress returns a copy of the user's canonical progress record.
func (s *DeckService) Progress(ctx context.Context, userID string) (*domain.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.ensureSessionLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sess.profile.Clone(), nil
}

// ensureSessionLocked loads or creates the single-owner session state for
// a user. A brand-new user gets an all-zero profile.
func (s *DeckService) ensureSessionLocked(ctx context.Context, userID string) (*deckSession, error) {
	if s.sessions == nil {
		s.sessions = make(map[string]*deckSession)
	}
	if sess, ok := s.sessions[userID]; ok {
		return sess, nil
	}

	profile, err := s.profiles.Load(ctx, userID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		profile = domain.NewUserProfile(userID, s.clock.Now())
	} else if err != nil {
		return nil, err
	}

	sess := &deckSession{profile: profile}

	deckDate, cards, err := s.decks.LoadDeck(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrDeckNotFound) {
		return nil, err
	}
	if err == nil {
		sess.deckDate = domain.CalendarDate(deckDate)
		for _, c := range cards {
			switch c.State {
			case domain.CardStateSnoozed:
				sess.snoozed = append(sess.snoozed, c)
			case domain.CardStatePending:
				sess.active = append(sess.active, c)
			}
		}
	}

	s.sessions[userID] = sess
	return sess, nil
}

// requeueExpiredSnoozesLocked moves due snoozed cards back into the active
// deck exactly once each. Cards still inside their snooze window stay out.
func (s *DeckService) requeueExpiredSnoozesLocked(sess *deckSession, now time.Time) {
	var remaining []*domain.CoachingCard
	for _, c := range sess.snoozed {
		if !c.SnoozeElapsed(now) {
			remaining = append(remaining, c)
			continue
		}
		if err := c.Wake(now); err != nil {
			log.Printf("Deck Service: wake rejected for card %s: %v", c.ID, err)
			remaining = append(remaining, c)
			continue
		}
		sess.active = append(sess.active, c)
	}
	sess.snoozed = remaining
}

// dropUnentitledLocked is the defensive half of premium filtering. The
// generator already filters; a premium card surfacing in a non-entitled
// deck is an invariant violation and gets dropped rather than exposed.
func (s *DeckService) dropUnentitledLocked(sess *deckSession, sub domain.SubscriptionState, now time.Time) {
	if sub.IsPremiumEffective(now) {
		return
	}
	kept := sess.active[:0]
	for _, c := range sess.active {
		if c.IsPremium {
			log.Printf("Deck Service: dropping premium card %s from non-entitled deck for user %s", c.ID, sess.profile.UserID)
			continue
		}
		kept = append(kept, c)
	}
	sess.active = kept
}

func (s *DeckService) recordEvent(ctx context.Context, userID string, card *domain.CoachingCard, action domain.CardAction, points int, now time.Time) {
	if s.events == nil {
		return
	}
	ev := domain.NewCardActionEvent(userID, card, action, points, now)
	if err := s.events.Append(ctx, ev); err != nil {
		log.Printf("Deck Service: failed to record %s event for card %s: %v", action, card.ID, err)
	}
}

func (s *DeckService) enqueueSnapshotLocked(sess *deckSession) {
	if s.snapshots == nil {
		return
	}
	all := make([]*domain.CoachingCard, 0, len(sess.active)+len(sess.snoozed))
	all = append(all, cloneCards(sess.active)...)
	all = append(all, cloneCards(sess.snoozed)...)
	s.snapshots.EnqueueSnapshot(sess.profile.Clone(), sess.deckDate, all)
}

func findCard(sess *deckSession, cardID string) *domain.CoachingCard {
	for _, c := range sess.active {
		if c.ID == cardID {
			return c
		}
	}
	for _, c := range sess.snoozed {
		if c.ID == cardID {
			return c
		}
	}
	return nil
}

func cloneCards(cards []*domain.CoachingCard) []*domain.CoachingCard {
	out := make([]*domain.CoachingCard, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
