package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID        uuid.UUID  `json:"id"`
	TeamID    uuid.UUID  `json:"team_id"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	SenderID  uuid.UUID  `json:"sender_id"`
	Content   string     `json:"content"`
	IsPinned  bool       `json:"is_pinned"`
	CreatedAt time.Time  `json:"created_at"`
	Sender    *User      `json:"sender,omitempty"`
}
