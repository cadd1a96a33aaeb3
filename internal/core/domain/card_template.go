package domain

import (
	"errors"
	"strings"
)

var (
	ErrTemplateTitleEmpty  = errors.New("template title cannot be empty")
	ErrTemplateActionEmpty = errors.New("template action text cannot be empty")
)

type ScoreBand string

const (
	BandLow  ScoreBand = "low"  // score < 30
	BandMid  ScoreBand = "mid"  // 30 <= score < 60
	BandHigh ScoreBand = "high" // score >= 60
)

// BandForScore maps a domain score onto the template band used for
// selection. Scores are clamped elsewhere; anything at or above 60 is high.
func BandForScore(score float64) ScoreBand {
	switch {
	case score < 30:
		return BandLow
	case score < 60:
		return BandMid
	default:
		return BandHigh
	}
}

// DifficultyRange returns the inclusive difficulty bounds for cards
// materialized from this band. Jitter applied by the generator stays
// inside these bounds so scoring remains fair.
func (b ScoreBand) DifficultyRange() (min, max float64) {
	switch b {
	case BandLow:
		return 1.0, 1.5
	case BandMid:
		return 1.5, 2.25
	default:
		return 2.25, 3.0
	}
}

// PointsRange returns the inclusive base-points bounds per band.
func (b ScoreBand) PointsRange() (min, max int) {
	switch b {
	case BandLow:
		return 8, 12
	case BandMid:
		return 10, 15
	default:
		return 12, 20
	}
}

// CardTemplate is immutable seed data. Templates carry no id; identity
// only exists once a template is materialized into a CoachingCard.
type CardTemplate struct {
	Title       string       `json:"title" db:"title"`
	ActionText  string       `json:"action_text" db:"action_text"`
	Explanation string       `json:"explanation,omitempty" db:"explanation"`
	Domain      LifeDomain   `json:"domain" db:"domain"`
	Band        ScoreBand    `json:"band" db:"band"`
	Priority    CardPriority `json:"priority" db:"priority"`
	Duration    CardDuration `json:"duration" db:"duration"`
	IsPremium   bool         `json:"is_premium" db:"is_premium"`
	Tags        []string     `json:"tags,omitempty" db:"tags"`
}

func (t *CardTemplate) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrTemplateTitleEmpty
	}
	if strings.TrimSpace(t.ActionText) == "" {
		return ErrTemplateActionEmpty
	}
	if !t.Domain.Valid() {
		return ErrInvalidDomain
	}
	return nil
}
