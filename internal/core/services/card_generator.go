package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

const (
	templatesPerDomain          = 2
	templatesPerDomainUnlimited = 3

	// DefaultAITimeout bounds each personalization call; on expiry the
	// generator degrades to the template-only deck.
	DefaultAITimeout = 3 * time.Second
)

// AIPersonalizer is the narrow interface over the external card-text
// generation service. Failures and timeouts are equivalent to "no
// personalized card available".
type AIPersonalizer interface {
	Generate(ctx context.Context, d domain.LifeDomain, profile *domain.UserProfile) (*domain.CoachingCard, error)
}

// CardGenerator assembles the day's deck from the template catalog,
// the user's domain scores and the subscription entitlements. All
// randomness flows through a single injectable source so decks are
// reproducible under a fixed seed.
type CardGenerator struct {
	catalog domain.TemplateCatalog
	gate    *SubscriptionGate
	ai      AIPersonalizer // nil disables personalization entirely
	clock   Clock

	aiTimeout time.Duration

	mu      sync.Mutex
	rng     *rand.Rand
	cursors map[string]int // round-robin position per (domain, band) pool
}

func NewCardGenerator(catalog domain.TemplateCatalog, gate *SubscriptionGate, ai AIPersonalizer, clock Clock, rng *rand.Rand) *CardGenerator {
	if clock == nil {
		clock = SystemClock{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CardGenerator{
		catalog:   catalog,
		gate:      gate,
		ai:        ai,
		clock:     clock,
		aiTimeout: DefaultAITimeout,
		rng:       rng,
		cursors:   make(map[string]int),
	}
}

// GenerateDailyDeck builds the ordered deck for one user. The result never
// contains a premium card for a non-entitled caller and never exceeds the
// tier's card limit. AI failures are absorbed: the deck degrades to
// template-only rather than erroring.
func (g *CardGenerator) GenerateDailyDeck(ctx context.Context, profile *domain.UserProfile, focus []domain.LifeDomain, sub domain.SubscriptionState) ([]*domain.CoachingCard, error) {
	now := g.clock.Now()
	ents := g.gate.Entitlements(sub, now)
	premium := sub.IsPremiumEffective(now)

	if len(focus) == 0 {
		focus = domain.AllDomains()
	}

	perDomain := templatesPerDomain
	if ents.UnlimitedCards {
		perDomain = templatesPerDomainUnlimited
	}

	var deck []*domain.CoachingCard
	for _, d := range focus {
		if !d.Valid() {
			return nil, fmt.Errorf("generate deck: %w: %q", domain.ErrInvalidDomain, d)
		}

		band := domain.BandForScore(profile.Score(d))
		pool, err := g.catalog.GetTemplates(ctx, d, band)
		if err != nil {
			return nil, fmt.Errorf("generate deck: load templates for %s/%s: %w", d, band, err)
		}

		// Entitlement filtering happens here, not downstream: the
		// lifecycle manager never special-cases premium cards.
		eligible := pool[:0:0]
		for _, tpl := range pool {
			if tpl.IsPremium && !premium {
				continue
			}
			eligible = append(eligible, tpl)
		}
		if len(eligible) == 0 {
			continue
		}

		for _, tpl := range g.pickRoundRobin(d, band, eligible, perDomain) {
			deck = append(deck, g.materialize(tpl, band, now))
		}
	}

	if ents.AIPersonalization && g.ai != nil {
		deck = append(deck, g.personalized(ctx, profile, focus)...)
	}

	g.mu.Lock()
	g.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	g.mu.Unlock()

	if len(deck) > ents.MaxDailyCards {
		deck = deck[:ents.MaxDailyCards]
	}

	return deck, nil
}

// pickRoundRobin selects up to count templates from the pool starting at a
// persistent per-pool cursor. Small pools cycle deterministically instead
// of repeating at random, so the same template never appears twice in one
// deck unless the pool is smaller than the pick count.
func (g *CardGenerator) pickRoundRobin(d domain.LifeDomain, band domain.ScoreBand, pool []*domain.CardTemplate, count int) []*domain.CardTemplate {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := string(d) + "|" + string(band)
	start := g.cursors[key]

	if count > len(pool) {
		count = len(pool)
	}

	picked := make([]*domain.CardTemplate, 0, count)
	for i := 0; i < count; i++ {
		picked = append(picked, pool[(start+i)%len(pool)])
	}
	g.cursors[key] = (start + count) % len(pool)

	return picked
}

// materialize instantiates a template with a fresh id and band-bounded
// jitter on difficulty and points. Jitter keeps repeated days from feeling
// mechanically identical without making scoring unfair.
func (g *CardGenerator) materialize(tpl *domain.CardTemplate, band domain.ScoreBand, now time.Time) *domain.CoachingCard {
	dMin, dMax := band.DifficultyRange()
	pMin, pMax := band.PointsRange()

	g.mu.Lock()
	difficulty := dMin + g.rng.Float64()*(dMax-dMin)
	points := pMin + g.rng.Intn(pMax-pMin+1)
	g.mu.Unlock()

	return domain.NewCardFromTemplate(tpl, difficulty, points, now)
}

// personalized fetches AI cards for each focus domain with a bounded
// timeout per call. Errors and timeouts are logged and skipped; a caller
// cancellation discards any result instead of appending it to a deck the
// user no longer wants.
func (g *CardGenerator) personalized(ctx context.Context, profile *domain.UserProfile, focus []domain.LifeDomain) []*domain.CoachingCard {
	var cards []*domain.CoachingCard
	for _, d := range focus {
		callCtx, cancel := context.WithTimeout(ctx, g.aiTimeout)
		card, err := g.ai.Generate(callCtx, d, profile)
		cancel()

		if err != nil {
			log.Printf("Card Generator: AI personalization skipped for %s: %v", d, err)
			continue
		}
		if ctx.Err() != nil {
			// Deck was regenerated or abandoned while this call was in
			// flight; the stale result must not leak into a newer deck.
			log.Printf("Card Generator: discarding in-flight AI card for %s: %v", d, ctx.Err())
			return cards
		}
		if card != nil {
			cards = append(cards, card)
		}
	}
	return cards
}
