package models

import (
	"time"

	"github.com/google/uuid"
)

const DecisionStatusDecided = "DECIDED"

type Decision struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID uuid.UUID      `json:"project_id"`
	UserID    uuid.UUID      `json:"user_id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Status    string         `json:"status"`
	TaskID    *uuid.UUID     `json:"task_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	User      *User          `json:"user,omitempty"`
	Notes     []DecisionNote `json:"notes,omitempty"`
}

type DecisionNote struct {
	ID         uuid.UUID `json:"id"`
	DecisionID uuid.UUID `json:"decision_id"`
	UserID     uuid.UUID `json:"user_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	User       *User     `json:"user,omitempty"`
}
