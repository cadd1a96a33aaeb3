package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lifedeck/coaching-engine/internal/adapters/handler/http/middleware"
	"github.com/lifedeck/coaching-engine/internal/core/services"
)

type ProgressHandler struct {
	decks *services.DeckService
}

func NewProgressHandler(decks *services.DeckService) *ProgressHandler {
	return &ProgressHandler{decks: decks}
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/progress", h.Progress)
	router.GET("/achievements", h.Achievements)
}

func (h *ProgressHandler) Progress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	profile, err := h.decks.Progress(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProgressHandler) Achievements(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	profile, err := h.decks.Progress(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"achievements": profile.Achievements})
}
