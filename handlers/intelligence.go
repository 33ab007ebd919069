package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/models"
	ai "github.com/bcs230015/Meeting-Mangagement-chatbot/services/intelligence"
	"github.com/bcs230015/Meeting-Mangagement-chatbot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIHandler exposes the single active conversation over HTTP.
type AIHandler struct {
	Conv *ai.Conversation
}

func NewAIHandler(conv *ai.Conversation) *AIHandler {
	return &AIHandler{Conv: conv}
}

// HandleChat submits one user turn and returns the assistant reply.
func (h *AIHandler) HandleChat(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid chat request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message must not be empty"})
		return
	}

	// A submitted turn runs to completion even if the caller disconnects,
	// so the turn is resolved outside the request context.
	reply, err := h.Conv.PostTurn(context.Background(), req.Message)
	if err != nil {
		if errors.Is(err, ai.ErrTurnInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": "A turn is already being processed"})
			return
		}
		logger.Error("Chat turn failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Chat failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{
		ConversationID: h.Conv.ID(),
		Reply:          reply,
	})
}

// HandleTranscript returns the full ordered transcript.
func (h *AIHandler) HandleTranscript(c *gin.Context) {
	c.JSON(http.StatusOK, models.TranscriptResponse{
		ConversationID: h.Conv.ID(),
		Turns:          h.Conv.Transcript(),
	})
}

// HandleReset starts a fresh conversation.
func (h *AIHandler) HandleReset(c *gin.Context) {
	if err := h.Conv.Reset(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A turn is already being processed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversationId": h.Conv.ID()})
}
