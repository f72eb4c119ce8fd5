// Package chat exposes the streaming chat endpoint: request validation,
// then a Server-Sent-Events relay of the orchestrator's chunk sequence.
package chat

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-chat/internal/domain"
	"portfolio-chat/internal/service"
)

const (
	maxMessageLength = 5000
	maxHistoryLength = 50
)

// Handler handles chat API requests
type Handler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

// NewHandler creates a new chat handler
func NewHandler(chatService *service.ChatService, logger *zap.Logger) *Handler {
	return &Handler{chatService: chatService, logger: logger}
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Chat)
}

// Chat handles a streaming chat turn (SSE). Validation failures are
// returned as plain JSON before any streaming begins.
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if len(req.Message) > maxMessageLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is too long (max 5000 characters)"})
		return
	}
	if len(req.ConversationHistory) > maxHistoryLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Conversation history is too long (max 50 messages)"})
		return
	}

	stream, err := h.chatService.StreamChat(c.Request.Context(), req.Message, req.ConversationHistory)
	if err != nil {
		// Nothing has been written yet, so an ordinary error response
		// is still possible.
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Set SSE headers
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache, no-transform")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-stream
		if !ok {
			fmt.Fprint(w, "data: [DONE]\n\n")
			return false
		}

		data, err := json.Marshal(chunk)
		if err != nil {
			h.logger.Error("Failed to marshal stream chunk", zap.Error(err))
			return true
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		return true
	})
}
