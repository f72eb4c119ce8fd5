package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-chat/internal/api/cards"
	"portfolio-chat/internal/api/chat"
	"portfolio-chat/internal/api/middleware"
	"portfolio-chat/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	chatService *service.ChatService,
	cardService *service.CardService,
	ctxService *service.ContextService,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	start := time.Now()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"uptime": time.Since(start).Seconds(),
		})
	})

	// Chat API (SSE)
	chatHandler := chat.NewHandler(chatService, logger)
	chatGroup := r.Group("/api/chat")
	chatHandler.RegisterRoutes(chatGroup)

	// Card API
	cardsHandler := cards.NewHandler(cardService, ctxService, logger)
	cardsGroup := r.Group("/api/cards")
	cardsHandler.RegisterRoutes(cardsGroup)

	// Personal info passthrough
	r.GET("/api/personal", cardsHandler.PersonalInfo)

	return r
}
