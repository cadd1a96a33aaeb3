package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lifedeck/coaching-engine/internal/adapters/handler/http/middleware"
	"github.com/lifedeck/coaching-engine/internal/core/domain"
	"github.com/lifedeck/coaching-engine/internal/core/services"
)

type DeckHandler struct {
	decks *services.DeckService
	subs  *services.SubscriptionService
}

func NewDeckHandler(decks *services.DeckService, subs *services.SubscriptionService) *DeckHandler {
	return &DeckHandler{
		decks: decks,
		subs:  subs,
	}
}

type gestureRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type updateCardRequest struct {
	Bookmarked *bool   `json:"bookmarked"`
	UserNote   *string `json:"user_note"`
}

func (h *DeckHandler) RegisterRoutes(router *gin.RouterGroup) {
	deck := router.Group("/deck")
	{
		deck.GET("", h.Load)
		deck.POST("/refresh", h.Refresh)
	}
	cards := router.Group("/cards")
	{
		cards.POST("/:id/gesture", h.Gesture)
		cards.PATCH("/:id", h.UpdateCard)
	}
}

// parseFocusDomains reads the optional ?focus=health,finance query.
// Absent or empty means all four domains.
func parseFocusDomains(c *gin.Context) ([]domain.LifeDomain, bool) {
	raw := c.Query("focus")
	if raw == "" {
		return nil, true
	}

	var focus []domain.LifeDomain
	for _, part := range strings.Split(raw, ",") {
		d := domain.LifeDomain(strings.TrimSpace(part))
		if !d.Valid() {
			return nil, false
		}
		focus = append(focus, d)
	}
	return focus, true
}

func (h *DeckHandler) Load(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	focus, ok := parseFocusDomains(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid focus domain"})
		return
	}

	deck, err := h.decks.LoadDeck(c.Request.Context(), userID, focus, h.subs.Current(userID))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": deck})
}

func (h *DeckHandler) Refresh(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	focus, ok := parseFocusDomains(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid focus domain"})
		return
	}

	deck, err := h.decks.RefreshDeck(c.Request.Context(), userID, focus, h.subs.Current(userID))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": deck})
}

func (h *DeckHandler) Gesture(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req gestureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.decks.ApplyGesture(c.Request.Context(), userID, c.Param("id"), req.DX, req.DY, h.subs.Current(userID))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *DeckHandler) UpdateCard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	card, err := h.decks.UpdateCard(c.Request.Context(), userID, c.Param("id"), req.Bookmarked, req.UserNote)
	if err != nil {
		if errors.Is(err, domain.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "card not found"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, card)
}
