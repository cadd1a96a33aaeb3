package repository

import (
	"context"
	"sync"
	"time"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

// In-memory adapters backing tests and the no-database dev mode. They
// mirror the postgres adapters' semantics, including whole-snapshot
// replacement.

type InMemoryProfileRepository struct {
	mu    sync.RWMutex
	store map[string]*domain.UserProfile
}

func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		store: make(map[string]*domain.UserProfile),
	}
}

func (r *InMemoryProfileRepository) Save(ctx context.Context, p *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[p.UserID] = p.Clone()
	return nil
}

func (r *InMemoryProfileRepository) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

type storedDeck struct {
	deckDate time.Time
	cards    []*domain.CoachingCard
}

type InMemoryDeckRepository struct {
	mu    sync.RWMutex
	store map[string]storedDeck
}

func NewInMemoryDeckRepository() *InMemoryDeckRepository {
	return &InMemoryDeckRepository{
		store: make(map[string]storedDeck),
	}
}

func (r *InMemoryDeckRepository) SaveDeck(ctx context.Context, userID string, deckDate time.Time, cards []*domain.CoachingCard) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]*domain.CoachingCard, 0, len(cards))
	for _, c := range cards {
		if c.Terminal() {
			continue
		}
		kept = append(kept, c.Clone())
	}
	r.store[userID] = storedDeck{deckDate: deckDate, cards: kept}
	return nil
}

func (r *InMemoryDeckRepository) LoadDeck(ctx context.Context, userID string) (time.Time, []*domain.CoachingCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.store[userID]
	if !ok || len(d.cards) == 0 {
		return time.Time{}, nil, domain.ErrDeckNotFound
	}

	cards := make([]*domain.CoachingCard, len(d.cards))
	for i, c := range d.cards {
		cards[i] = c.Clone()
	}
	return d.deckDate, cards, nil
}

type InMemoryTemplateCatalog struct {
	mu    sync.RWMutex
	pools map[string][]*domain.CardTemplate
}

func NewInMemoryTemplateCatalog() *InMemoryTemplateCatalog {
	return &InMemoryTemplateCatalog{
		pools: make(map[string][]*domain.CardTemplate),
	}
}

// Add seeds a template into its (domain, band) pool. Invalid templates
// are rejected before they can poison generation.
func (r *InMemoryTemplateCatalog) Add(tpl *domain.CardTemplate) error {
	if err := tpl.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := string(tpl.Domain) + "|" + string(tpl.Band)
	r.pools[key] = append(r.pools[key], tpl)
	return nil
}

func (r *InMemoryTemplateCatalog) GetTemplates(ctx context.Context, d domain.LifeDomain, band domain.ScoreBand) ([]*domain.CardTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := string(d) + "|" + string(band)
	return append([]*domain.CardTemplate(nil), r.pools[key]...), nil
}

type InMemoryEventRepository struct {
	mu     sync.RWMutex
	events []*domain.CardActionEvent
}

func NewInMemoryEventRepository() *InMemoryEventRepository {
	return &InMemoryEventRepository{}
}

func (r *InMemoryEventRepository) Append(ctx context.Context, e *domain.CardActionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	return nil
}

func (r *InMemoryEventRepository) ListByUserID(ctx context.Context, userID string, since time.Time) ([]*domain.CardActionEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.CardActionEvent
	for _, e := range r.events {
		if e.UserID == userID && e.OccurredAt.After(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	store map[string]*domain.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		store: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.store {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	clone := *user
	r.store[user.ID] = &clone
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.store {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.store[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}
