package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/dto"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/api/middleware"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/core/docdb"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/errors"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/domain/models"
	"github.com/Chaitanya-OverDev/AgriAssist/internal/services/conversation"
)

// ChatHandler handles chat session and message endpoints.
type ChatHandler struct {
	sessions     docdb.SessionsCollection
	messages     docdb.MessagesCollection
	orchestrator *conversation.Orchestrator
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(sessions docdb.SessionsCollection, messages docdb.MessagesCollection, orchestrator *conversation.Orchestrator) *ChatHandler {
	return &ChatHandler{
		sessions:     sessions,
		messages:     messages,
		orchestrator: orchestrator,
	}
}

// CreateSession handles POST /users/{userId}/sessions
// @Summary Create a chat session
// @Description Creates a new consultation session for the user
// @Tags Chat
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body dto.CreateSessionRequest false "Optional title"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/sessions [post]
func (h *ChatHandler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	session := models.NewChatSession(userID, req.Title)
	if err := h.sessions.Create(ctx, session); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to create session", err))
		return
	}

	c.JSON(http.StatusCreated, dto.SessionResponse{Session: session})
}

// ListSessions handles GET /users/{userId}/sessions
// @Summary List chat sessions
// @Description Lists the user's sessions, newest first
// @Tags Chat
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.SessionsResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/sessions [get]
func (h *ChatHandler) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")

	sessions, err := h.sessions.ListByUser(ctx, userID)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to list sessions", err))
		return
	}

	c.JSON(http.StatusOK, dto.SessionsResponse{
		Sessions: sessions,
		Total:    len(sessions),
	})
}

// GetHistory handles GET /users/{userId}/sessions/{sessionId}/messages
// @Summary Get chat history
// @Description Returns the session's messages in chronological order
// @Tags Chat
// @Produce json
// @Param userId path string true "User ID"
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.MessagesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/sessions/{sessionId}/messages [get]
func (h *ChatHandler) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")
	sessionID := c.Param("sessionId")

	session, err := h.sessions.Get(ctx, sessionID, userID)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to load session", err))
		return
	}
	if session == nil {
		middleware.HandleError(c, errors.NewNotFoundError("session", sessionID))
		return
	}

	messages, err := h.messages.ListBySession(ctx, sessionID)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to load messages", err))
		return
	}

	c.JSON(http.StatusOK, dto.MessagesResponse{
		Messages: messages,
		Total:    len(messages),
	})
}

// DeleteSession handles DELETE /users/{userId}/sessions/{sessionId}
// @Summary Delete a chat session
// @Description Removes the session and all of its messages
// @Tags Chat
// @Produce json
// @Param userId path string true "User ID"
// @Param sessionId path string true "Session ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/sessions/{sessionId} [delete]
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")
	sessionID := c.Param("sessionId")

	deleted, err := h.sessions.Delete(ctx, sessionID, userID)
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to delete session", err))
		return
	}
	if !deleted {
		middleware.HandleError(c, errors.NewNotFoundError("session", sessionID))
		return
	}

	if _, err := h.messages.DeleteBySession(ctx, sessionID); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to delete session messages", err))
		return
	}

	c.Status(http.StatusNoContent)
}

// SendMessage handles POST /users/{userId}/sessions/{sessionId}/messages
// @Summary Send a chat message
// @Description Runs the advisory exchange and returns the model's reply
// @Tags Chat
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param sessionId path string true "Session ID"
// @Param request body dto.SendChatMessageRequest true "Message content"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/sessions/{sessionId}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")
	sessionID := c.Param("sessionId")

	var req dto.SendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	reply, err := h.orchestrator.Respond(ctx, userID, sessionID, req.Content)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChatResponse{Reply: reply})
}
