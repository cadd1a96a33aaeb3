package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lifedeck/coaching-engine/internal/adapters/handler/http/middleware"
	"github.com/lifedeck/coaching-engine/internal/core/domain"
	"github.com/lifedeck/coaching-engine/internal/core/services"
)

// SubscriptionHandler is the push surface for the host app's billing
// integration. The engine treats the pushed state as read-only input.
type SubscriptionHandler struct {
	subs *services.SubscriptionService
	gate *services.SubscriptionGate
}

func NewSubscriptionHandler(subs *services.SubscriptionService, gate *services.SubscriptionGate) *SubscriptionHandler {
	return &SubscriptionHandler{
		subs: subs,
		gate: gate,
	}
}

type putSubscriptionRequest struct {
	Tier      string     `json:"tier" binding:"required"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *SubscriptionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.PUT("/subscription", h.Put)
	router.GET("/subscription", h.Get)
}

func (h *SubscriptionHandler) Put(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := domain.SubscriptionState{
		Tier:      domain.SubscriptionTier(req.Tier),
		IsActive:  req.IsActive,
		ExpiresAt: req.ExpiresAt,
	}

	if err := h.subs.Set(userID, state); err != nil {
		if errors.Is(err, domain.ErrInvalidTier) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	state := h.subs.Current(userID)

	c.JSON(http.StatusOK, gin.H{
		"subscription": state,
		"entitlements": h.gate.Entitlements(state, time.Now().UTC()),
	})
}
