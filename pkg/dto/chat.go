package dto

import "github.com/google/uuid"

type PinMessageRequest struct {
	IsPinned bool `json:"is_pinned"`
}

// WSClientMessage is what a websocket client sends to the chat endpoint.
type WSClientMessage struct {
	Type      string     `json:"type"`
	ProjectID *uuid.UUID `json:"project_id"`
	Content   string     `json:"content"`
	MessageID *uuid.UUID `json:"message_id"`
}
