package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

type PostgresProfileRepository struct {
	db *sqlx.DB
}

func NewPostgresProfileRepository(db *sqlx.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

// Save performs a whole-snapshot upsert: every column is replaced in one
// statement so a lagging background save can only ever be stale, never
// partially applied (last-writer-wins at profile granularity).
func (r *PostgresProfileRepository) Save(ctx context.Context, p *domain.UserProfile) error {
	scoresJSON, err := json.Marshal(p.DomainScores)
	if err != nil {
		return fmt.Errorf("failed to marshal domain scores: %w", err)
	}
	achievementsJSON, err := json.Marshal(p.Achievements)
	if err != nil {
		return fmt.Errorf("failed to marshal achievements: %w", err)
	}

	query := `
        INSERT INTO profiles (
            user_id, domain_scores, life_score,
            current_streak, longest_streak, life_points, total_cards_completed,
            last_active_date, achievements, created_at, updated_at
        ) VALUES (
            $1, $2, $3,
            $4, $5, $6, $7,
            $8, $9, $10, $11
        )
        ON CONFLICT (user_id) DO UPDATE SET
            domain_scores = EXCLUDED.domain_scores,
            life_score = EXCLUDED.life_score,
            current_streak = EXCLUDED.current_streak,
            longest_streak = EXCLUDED.longest_streak,
            life_points = EXCLUDED.life_points,
            total_cards_completed = EXCLUDED.total_cards_completed,
            last_active_date = EXCLUDED.last_active_date,
            achievements = EXCLUDED.achievements,
            updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		p.UserID, scoresJSON, p.LifeScore,
		p.CurrentStreak, p.LongestStreak, p.LifePoints, p.TotalCardsCompleted,
		p.LastActiveDate, achievementsJSON, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

func (r *PostgresProfileRepository) Load(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `
        SELECT user_id, domain_scores, life_score,
               current_streak, longest_streak, life_points, total_cards_completed,
               last_active_date, achievements, created_at, updated_at
        FROM profiles
        WHERE user_id = $1`

	var (
		p                domain.UserProfile
		scoresJSON       []byte
		achievementsJSON []byte
		lastActive       sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &scoresJSON, &p.LifeScore,
		&p.CurrentStreak, &p.LongestStreak, &p.LifePoints, &p.TotalCardsCompleted,
		&lastActive, &achievementsJSON, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	if err := json.Unmarshal(scoresJSON, &p.DomainScores); err != nil {
		return nil, fmt.Errorf("failed to unmarshal domain scores: %w", err)
	}
	if err := json.Unmarshal(achievementsJSON, &p.Achievements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal achievements: %w", err)
	}
	if lastActive.Valid {
		d := lastActive.Time.UTC()
		p.LastActiveDate = &d
	}

	// Older snapshots predating a catalog extension gain the new entries
	// locked.
	if missing := missingCatalogEntries(p.Achievements); len(missing) > 0 {
		p.Achievements = append(p.Achievements, missing...)
	}

	return &p, nil
}

func missingCatalogEntries(have []domain.Achievement) []domain.Achievement {
	known := make(map[string]bool, len(have))
	for _, a := range have {
		known[a.ID] = true
	}
	var missing []domain.Achievement
	for _, a := range domain.DefaultAchievementCatalog() {
		if !known[a.ID] {
			missing = append(missing, a)
		}
	}
	return missing
}

var _ domain.ProfileRepository = (*PostgresProfileRepository)(nil)
