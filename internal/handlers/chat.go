package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/middleware"
	"github.com/hackhub/hackhub-api/internal/services"
	"github.com/hackhub/hackhub-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// ChatHandler serves the REST side of project chat: history, pinned
// messages, and pin toggling. Live delivery happens over the websocket.
type ChatHandler struct {
	chatService    ChatServiceInterface
	projectService ProjectServiceInterface
	hub            HubInterface
}

func NewChatHandler(chatService ChatServiceInterface, projectService ProjectServiceInterface, hub HubInterface) *ChatHandler {
	return &ChatHandler{
		chatService:    chatService,
		projectService: projectService,
		hub:            hub,
	}
}

func (h *ChatHandler) GetHistory(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.BadRequest("invalid limit")
			return
		}
	}

	ctx := context.Background()

	project, err := h.projectService.GetByID(ctx, projectID)
	if err != nil {
		c.NotFound("project not found")
		return
	}

	messages, err := h.chatService.GetRecentMessages(ctx, project.TeamID, &projectID, limit)
	if err != nil {
		c.InternalServerError("failed to get messages")
		return
	}

	_ = c.JSON(200, messages)
}

func (h *ChatHandler) GetPinned(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	ctx := context.Background()

	project, err := h.projectService.GetByID(ctx, projectID)
	if err != nil {
		c.NotFound("project not found")
		return
	}

	messages, err := h.chatService.GetPinnedMessages(ctx, project.TeamID, &projectID)
	if err != nil {
		c.InternalServerError("failed to get pinned messages")
		return
	}

	_ = c.JSON(200, messages)
}

func (h *ChatHandler) PinMessage(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		c.BadRequest("invalid message id")
		return
	}

	var req dto.PinMessageRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	message, err := h.chatService.PinMessage(context.Background(), messageID, req.IsPinned)
	if err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to pin message")
		return
	}

	h.hub.BroadcastMessagePinned(projectID, message.ID, middleware.GetUserID(c), message.IsPinned)

	_ = c.JSON(200, message)
}
