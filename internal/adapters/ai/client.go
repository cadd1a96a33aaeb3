package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/lifedeck/coaching-engine/internal/core/domain"
)

var ErrGenerationFailed = errors.New("ai card generation failed")

// Client calls the external personalization service over HTTP. Every call
// runs under the caller's context; the generator supplies the timeout and
// treats any error as "no personalized card available".
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type generateRequest struct {
	Domain        string  `json:"domain"`
	DomainScore   float64 `json:"domain_score"`
	LifeScore     float64 `json:"life_score"`
	CurrentStreak int     `json:"current_streak"`
}

type generateResponse struct {
	Title      string   `json:"title"`
	ActionText string   `json:"action_text"`
	Difficulty float64  `json:"difficulty"`
	Points     int      `json:"points"`
	Tags       []string `json:"tags"`
}

func (c *Client) Generate(ctx context.Context, d domain.LifeDomain, profile *domain.UserProfile) (*domain.CoachingCard, error) {
	payload, err := json.Marshal(generateRequest{
		Domain:        string(d),
		DomainScore:   profile.Score(d),
		LifeScore:     profile.LifeScore,
		CurrentStreak: profile.CurrentStreak,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrGenerationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/cards/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGenerationFailed, err)
	}
	if body.Title == "" || body.ActionText == "" {
		return nil, fmt.Errorf("%w: empty card in response", ErrGenerationFailed)
	}

	difficulty := body.Difficulty
	if difficulty < 1.0 || difficulty > 3.0 {
		difficulty = 1.5
	}
	points := body.Points
	if points <= 0 {
		points = 10
	}

	return &domain.CoachingCard{
		ID:          uuid.NewString(),
		Title:       body.Title,
		Domain:      d,
		ActionText:  body.ActionText,
		Difficulty:  difficulty,
		Points:      points,
		Priority:    domain.PriorityMedium,
		Duration:    domain.DurationShort,
		AIGenerated: true,
		State:       domain.CardStatePending,
		CreatedAt:   time.Now().UTC(),
		Tags:        body.Tags,
	}, nil
}
