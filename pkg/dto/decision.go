package dto

import "github.com/google/uuid"

type CreateDecisionRequest struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	TaskID  *uuid.UUID `json:"task_id"`
}

type AddDecisionNoteRequest struct {
	Content string `json:"content"`
}
