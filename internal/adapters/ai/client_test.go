package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lifedeck/coaching-engine/internal/adapters/ai"
	"github.com/lifedeck/coaching-engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func testProfile() *domain.UserProfile {
	p := domain.NewUserProfile("u1", time.Now().UTC())
	p.DomainScores[domain.DomainHealth] = 42
	p.RecomputeLifeScore()
	p.CurrentStreak = 3
	return p
}

func TestClient_Generate(t *testing.T) {
	t.Run("Success: Builds an AI-flagged pending card", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)

			_ = json.NewEncoder(w).Encode(map[string]any{
				"title":       "Mindful inbox sweep",
				"action_text": "Archive five emails with full attention.",
				"difficulty":  2.2,
				"points":      14,
				"tags":        []string{"focus"},
			})
		}))
		defer server.Close()

		client := ai.NewClient(server.URL, "secret-key")
		card, err := client.Generate(context.Background(), domain.DomainHealth, testProfile())

		assert.NoError(t, err)
		assert.Equal(t, "/v1/cards/generate", gotPath)
		assert.Equal(t, "Bearer secret-key", gotAuth)
		assert.Equal(t, "health", gotBody["domain"])
		assert.Equal(t, 42.0, gotBody["domain_score"])

		assert.NotEmpty(t, card.ID)
		assert.Equal(t, "Mindful inbox sweep", card.Title)
		assert.Equal(t, domain.DomainHealth, card.Domain)
		assert.Equal(t, 2.2, card.Difficulty)
		assert.Equal(t, 14, card.Points)
		assert.True(t, card.AIGenerated)
		assert.False(t, card.IsPremium)
		assert.Equal(t, domain.CardStatePending, card.State)
	})

	t.Run("Sanitize: Out-of-range difficulty and points get defaults", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"title":       "T",
				"action_text": "A",
				"difficulty":  7.5,
				"points":      -3,
			})
		}))
		defer server.Close()

		card, err := ai.NewClient(server.URL, "").Generate(context.Background(), domain.DomainFinance, testProfile())

		assert.NoError(t, err)
		assert.Equal(t, 1.5, card.Difficulty)
		assert.Equal(t, 10, card.Points)
	})

	t.Run("Error: Non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		_, err := ai.NewClient(server.URL, "").Generate(context.Background(), domain.DomainHealth, testProfile())

		assert.ErrorIs(t, err, ai.ErrGenerationFailed)
	})

	t.Run("Error: Empty card in response body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"title": "", "action_text": ""})
		}))
		defer server.Close()

		_, err := ai.NewClient(server.URL, "").Generate(context.Background(), domain.DomainHealth, testProfile())

		assert.ErrorIs(t, err, ai.ErrGenerationFailed)
	})

	t.Run("Error: Context cancellation aborts the call", func(t *testing.T) {
		block := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-block
		}))
		defer server.Close()
		defer close(block)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := ai.NewClient(server.URL, "").Generate(ctx, domain.DomainHealth, testProfile())

		assert.ErrorIs(t, err, ai.ErrGenerationFailed)
	})
}
