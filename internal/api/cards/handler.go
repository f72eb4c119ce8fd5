// Package cards exposes the card endpoints and the personal-info
// passthrough.
package cards

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/service"
)

// Handler handles card API requests
type Handler struct {
	cardService *service.CardService
	ctxService  *service.ContextService
	logger      *zap.Logger
}

// NewHandler creates a new cards handler. ctxService may be nil when the
// portfolio document failed to load.
func NewHandler(cardService *service.CardService, ctxService *service.ContextService, logger *zap.Logger) *Handler {
	return &Handler{
		cardService: cardService,
		ctxService:  ctxService,
		logger:      logger,
	}
}

// RegisterRoutes registers card routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/:category", h.GetCard)
}

// GetCard resolves one card category
func (h *Handler) GetCard(c *gin.Context) {
	category := c.Param("category")

	resp, err := h.cardService.Resolve(c.Request.Context(), category)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown card category: " + category})
			return
		}
		h.logger.Error("Card resolution failed",
			zap.String("category", category),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// PersonalInfo returns the owner's personal information verbatim
func (h *Handler) PersonalInfo(c *gin.Context) {
	if h.ctxService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": domain.ErrDataUnavailable.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"personalInfo": h.ctxService.PersonalInfo()})
}
