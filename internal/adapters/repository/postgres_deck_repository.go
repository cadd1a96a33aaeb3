package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

type PostgresDeckRepository struct {
	db *sqlx.DB
}

func NewPostgresDeckRepository(db *sqlx.DB) *PostgresDeckRepository {
	return &PostgresDeckRepository{db: db}
}

// SaveDeck replaces the user's stored deck wholesale inside one
// transaction. Only pending and snoozed cards are stored; completed and
// dismissed cards live on as action events, not card rows. Persisting
// snoozed_until is what makes snooze survive process restarts.
func (r *PostgresDeckRepository) SaveDeck(ctx context.Context, userID string, deckDate time.Time, cards []*domain.CoachingCard) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin deck tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deck_cards WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear deck: %w", err)
	}

	insert := `
        INSERT INTO deck_cards (
            id, user_id, deck_date, title, domain, action_text,
            difficulty, points, priority, duration,
            is_premium, ai_generated, state,
            created_at, snoozed_until, tags, bookmarked, user_note
        ) VALUES (
            $1, $2, $3, $4, $5, $6,
            $7, $8, $9, $10,
            $11, $12, $13,
            $14, $15, $16, $17, $18
        )`

	for _, c := range cards {
		if c.Terminal() {
			continue
		}
		_, err := tx.ExecContext(ctx, insert,
			c.ID, userID, deckDate, c.Title, c.Domain, c.ActionText,
			c.Difficulty, c.Points, c.Priority, c.Duration,
			c.IsPremium, c.AIGenerated, c.State,
			c.CreatedAt, c.SnoozedUntil, pq.Array(c.Tags), c.Bookmarked, c.UserNote,
		)
		if err != nil {
			return fmt.Errorf("failed to insert deck card %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck: %w", err)
	}
	return nil
}

func (r *PostgresDeckRepository) LoadDeck(ctx context.Context, userID string) (time.Time, []*domain.CoachingCard, error) {
	query := `
        SELECT id, deck_date, title, domain, action_text,
               difficulty, points, priority, duration,
               is_premium, ai_generated, state,
               created_at, snoozed_until, tags, bookmarked, user_note
        FROM deck_cards
        WHERE user_id = $1
        ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("deck query error: %w", err)
	}
	defer rows.Close()

	var (
		deckDate time.Time
		cards    []*domain.CoachingCard
	)

	for rows.Next() {
		var c domain.CoachingCard
		var tags pq.StringArray

		err := rows.Scan(
			&c.ID, &deckDate, &c.Title, &c.Domain, &c.ActionText,
			&c.Difficulty, &c.Points, &c.Priority, &c.Duration,
			&c.IsPremium, &c.AIGenerated, &c.State,
			&c.CreatedAt, &c.SnoozedUntil, &tags, &c.Bookmarked, &c.UserNote,
		)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("deck row scan error: %w", err)
		}
		c.Tags = []string(tags)
		cards = append(cards, &c)
	}

	if len(cards) == 0 {
		return time.Time{}, nil, domain.ErrDeckNotFound
	}

	return deckDate, cards, nil
}

var _ domain.DeckRepository = (*PostgresDeckRepository)(nil)
