package handlers

import (
	"github.com/google/uuid"
	hubpkg "github.com/hackhub/hackhub-api/internal/hub"
	"github.com/hackhub/hackhub-api/internal/middleware"
	"github.com/m1z23r/drift/pkg/drift"
)

// SSEHandler streams project events to clients that cannot hold a
// websocket open. The route is guarded, so by the time Connect runs the
// caller is a verified project member.
type SSEHandler struct {
	hub HubInterface
}

func NewSSEHandler(hub HubInterface) *SSEHandler {
	return &SSEHandler{hub: hub}
}

func (h *SSEHandler) Connect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	sseCtx := c.SSE()

	client := &hubpkg.Client{
		ID:       uuid.New().String(),
		UserID:   userID,
		Projects: map[uuid.UUID]bool{projectID: true},
		Send:     make(chan []byte, 256),
	}

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": client.ID,
	}, "system", ""); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		<-c.Request.Context().Done()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
