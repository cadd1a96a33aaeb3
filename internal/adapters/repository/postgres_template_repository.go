package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

// PostgresTemplateRepository serves the static card template pool. The
// engine only ever reads from it; seeding happens out of band.
type PostgresTemplateRepository struct {
	db *sqlx.DB
}

func NewPostgresTemplateRepository(db *sqlx.DB) *PostgresTemplateRepository {
	return &PostgresTemplateRepository{db: db}
}

func (r *PostgresTemplateRepository) GetTemplates(ctx context.Context, d domain.LifeDomain, band domain.ScoreBand) ([]*domain.CardTemplate, error) {
	query := `
        SELECT title, action_text, explanation, domain, band,
               priority, duration, is_premium, tags
        FROM card_templates
        WHERE domain = $1 AND band = $2
        ORDER BY title ASC`

	rows, err := r.db.QueryContext(ctx, query, d, band)
	if err != nil {
		return nil, fmt.Errorf("template query error: %w", err)
	}
	defer rows.Close()

	var templates []*domain.CardTemplate
	for rows.Next() {
		var t domain.CardTemplate
		var tags pq.StringArray

		err := rows.Scan(
			&t.Title, &t.ActionText, &t.Explanation, &t.Domain, &t.Band,
			&t.Priority, &t.Duration, &t.IsPremium, &tags,
		)
		if err != nil {
			return nil, fmt.Errorf("template row scan error: %w", err)
		}
		t.Tags = []string(tags)
		templates = append(templates, &t)
	}

	return templates, nil
}

var _ domain.TemplateCatalog = (*PostgresTemplateRepository)(nil)
