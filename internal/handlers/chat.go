package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/KhairnarLokesh/hackmate-ai/internal/errors"
	"github.com/KhairnarLokesh/hackmate-ai/internal/identity"
	"github.com/KhairnarLokesh/hackmate-ai/internal/middleware"
	"github.com/KhairnarLokesh/hackmate-ai/internal/models"
	"github.com/KhairnarLokesh/hackmate-ai/internal/services"
)

// ChatHandler coordinates team-chat HTTP handlers.
type ChatHandler struct {
	chat      *services.ChatService
	provider  *identity.Provider
	aiService *services.AIService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chat *services.ChatService, provider *identity.Provider, aiService *services.AIService) *ChatHandler {
	return &ChatHandler{
		chat:      chat,
		provider:  provider,
		aiService: aiService,
	}
}

// SendMessage appends a chat message from the current user.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	type MessageRequest struct {
		Content string `json:"content" binding:"required"`
	}

	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.chat.SendMessage(c.Request.Context(), project.ID, userID, h.senderName(c, userID), models.SenderUser, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			apierrors.BadRequest(c, "Message content is empty")
			return
		}
		apierrors.InternalError(c, "Failed to send message")
		return
	}

	c.JSON(http.StatusCreated, message)
}

// AskAssistant posts the user's prompt to the chat and appends the AI
// gateway's reply as an ai-sender message.
func (h *ChatHandler) AskAssistant(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	userID, _ := middleware.GetUserID(c)

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured")
		return
	}

	type PromptRequest struct {
		Prompt string `json:"prompt" binding:"required"`
	}

	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.chat.SendMessage(c.Request.Context(), project.ID, userID, h.senderName(c, userID), models.SenderUser, req.Prompt); err != nil {
		apierrors.InternalError(c, "Failed to send message")
		return
	}

	answer, err := h.aiService.Answer(c.Request.Context(), project, req.Prompt)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.chat.SendMessage(c.Request.Context(), project.ID, "assistant", "HackMate AI", models.SenderAI, answer)
	if err != nil {
		apierrors.InternalError(c, "Failed to post AI reply")
		return
	}

	c.JSON(http.StatusCreated, reply)
}

func (h *ChatHandler) senderName(c *gin.Context, userID string) string {
	account, err := h.provider.GetAccount(userID)
	if err != nil {
		return "Unknown"
	}
	return account.Name
}
