package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

// PostgresEventRepository is the append-only analytics sink for card
// actions.
type PostgresEventRepository struct {
	db *sqlx.DB
}

func NewPostgresEventRepository(db *sqlx.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

func (r *PostgresEventRepository) Append(ctx context.Context, e *domain.CardActionEvent) error {
	query := `
        INSERT INTO card_events (id, user_id, card_id, domain, action, points, occurred_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.CardID, e.Domain, e.Action, e.Points, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert card event: %w", err)
	}
	return nil
}

func (r *PostgresEventRepository) ListByUserID(ctx context.Context, userID string, since time.Time) ([]*domain.CardActionEvent, error) {
	query := `
        SELECT id, user_id, card_id, domain, action, points, occurred_at
        FROM card_events
        WHERE user_id = $1 AND occurred_at > $2
        ORDER BY occurred_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("event query error: %w", err)
	}
	defer rows.Close()

	var events []*domain.CardActionEvent
	for rows.Next() {
		var e domain.CardActionEvent
		err := rows.Scan(&e.ID, &e.UserID, &e.CardID, &e.Domain, &e.Action, &e.Points, &e.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("event row scan error: %w", err)
		}
		events = append(events, &e)
	}

	return events, nil
}

var _ domain.EventRepository = (*PostgresEventRepository)(nil)
