package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	hubpkg "github.com/hackhub/hackhub-api/internal/hub"
	"github.com/hackhub/hackhub-api/internal/middleware"
	"github.com/hackhub/hackhub-api/internal/rbac"
	"github.com/hackhub/hackhub-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/websocket"
)

// WebSocketHandler is the live chat endpoint. A connected client joins
// project rooms, sends messages into them, and receives every event the
// hub fans out for those rooms. Room access is re-checked through the
// guard on every join and send, so a revoked membership takes effect on
// the next operation rather than at reconnect.
type WebSocketHandler struct {
	hub            HubInterface
	guard          *rbac.Guard
	chatService    ChatServiceInterface
	projectService ProjectServiceInterface
	userService    UserServiceInterface
}

func NewWebSocketHandler(
	hub HubInterface,
	guard *rbac.Guard,
	chatService ChatServiceInterface,
	projectService ProjectServiceInterface,
	userService UserServiceInterface,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		guard:          guard,
		chatService:    chatService,
		projectService: projectService,
		userService:    userService,
	}
}

func (h *WebSocketHandler) Connect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	ctx := context.Background()

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Unauthorized("user not found")
		return
	}

	conn, err := websocket.Upgrade(c)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(websocket.CloseNormalClosure, ""); err != nil {
			log.Printf("WebSocket close error: %v", err)
		}
	}()

	client := &hubpkg.Client{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		UserName:  user.Name,
		AvatarURL: user.AvatarURL,
		Projects:  make(map[uuid.UUID]bool),
		Send:      make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := conn.WriteJSON(map[string]string{
		"type":      "connected",
		"client_id": client.ID,
	}); err != nil {
		return
	}

	// The pump goroutine is the sole writer after the handshake; replies
	// from the read loop go through client.Send as well.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range client.Send {
			if err := conn.WriteText(string(msg)); err != nil {
				return
			}
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var msg dto.WSClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.reply(client, errorEvent("invalid message"))
			continue
		}

		select {
		case <-done:
			return
		default:
		}

		h.handleMessage(ctx, client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(ctx context.Context, client *hubpkg.Client, msg *dto.WSClientMessage) {
	switch msg.Type {
	case "join_project":
		h.handleJoin(ctx, client, msg)
	case "leave_project":
		if msg.ProjectID != nil {
			h.hub.LeaveProject(client.ID, *msg.ProjectID)
		}
	case "send_message":
		h.handleSend(ctx, client, msg)
	case "get_history":
		h.handleHistory(ctx, client, msg)
	case "pin_message":
		h.handlePin(ctx, client, msg)
	default:
		h.reply(client, errorEvent("unknown message type: "+msg.Type))
	}
}

func (h *WebSocketHandler) handleJoin(ctx context.Context, client *hubpkg.Client, msg *dto.WSClientMessage) {
	if msg.ProjectID == nil {
		h.reply(client, errorEvent("project_id is required"))
		return
	}

	if err := h.guard.Authorize(ctx, client.UserID.String(), msg.ProjectID.String(), rbac.RoleViewer); err != nil {
		h.reply(client, errorEvent(err.Error()))
		return
	}

	h.hub.JoinProject(client.ID, *msg.ProjectID)
	h.reply(client, map[string]interface{}{
		"type":       "joined_project",
		"project_id": msg.ProjectID,
	})
}

func (h *WebSocketHandler) handleSend(ctx context.Context, client *hubpkg.Client, msg *dto.WSClientMessage) {
	if msg.ProjectID == nil {
		h.reply(client, errorEvent("project_id is required"))
		return
	}
	if msg.Content == "" {
		h.reply(client, errorEvent("content is required"))
		return
	}

	if err := h.guard.Authorize(ctx, client.UserID.String(), msg.ProjectID.String(), rbac.RoleViewer); err != nil {
		h.reply(client, errorEvent(err.Error()))
		return
	}

	project, err := h.projectService.GetByID(ctx, *msg.ProjectID)
	if err != nil {
		h.reply(client, errorEvent("project not found"))
		return
	}

	message, err := h.chatService.SaveMessage(ctx, project.TeamID, msg.ProjectID, client.UserID, msg.Content)
	if err != nil {
		h.reply(client, errorEvent("failed to save message"))
		return
	}

	h.hub.BroadcastChatMessage(*msg.ProjectID, message)
}

func (h *WebSocketHandler) handleHistory(ctx context.Context, client *hubpkg.Client, msg *dto.WSClientMessage) {
	if msg.ProjectID == nil {
		h.reply(client, errorEvent("project_id is required"))
		return
	}

	if err := h.guard.Authorize(ctx, client.UserID.String(), msg.ProjectID.String(), rbac.RoleViewer); err != nil {
		h.reply(client, errorEvent(err.Error()))
		return
	}

	project, err := h.projectService.GetByID(ctx, *msg.ProjectID)
	if err != nil {
		h.reply(client, errorEvent("project not found"))
		return
	}

	messages, err := h.chatService.GetRecentMessages(ctx, project.TeamID, msg.ProjectID, 0)
	if err != nil {
		h.reply(client, errorEvent("failed to get history"))
		return
	}

	h.reply(client, map[string]interface{}{
		"type":       "history",
		"project_id": msg.ProjectID,
		"messages":   messages,
	})
}

func (h *WebSocketHandler) handlePin(ctx context.Context, client *hubpkg.Client, msg *dto.WSClientMessage) {
	if msg.ProjectID == nil || msg.MessageID == nil {
		h.reply(client, errorEvent("project_id and message_id are required"))
		return
	}

	if err := h.guard.Authorize(ctx, client.UserID.String(), msg.ProjectID.String(), rbac.RoleEditor); err != nil {
		h.reply(client, errorEvent(err.Error()))
		return
	}

	message, err := h.chatService.PinMessage(ctx, *msg.MessageID, true)
	if err != nil {
		h.reply(client, errorEvent("failed to pin message"))
		return
	}

	h.hub.BroadcastMessagePinned(*msg.ProjectID, message.ID, client.UserID, message.IsPinned)
}

// reply pushes a JSON payload onto the client's send buffer, dropping it
// when the buffer is full, same as the hub does for broadcasts.
func (h *WebSocketHandler) reply(client *hubpkg.Client, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}

func errorEvent(msg string) map[string]string {
	return map[string]string{
		"type":    "error",
		"message": msg,
	}
}
