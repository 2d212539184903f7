package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusTodo       = "TODO"
	TaskStatusInProgress = "IN_PROGRESS"
	TaskStatusDone       = "DONE"
	TaskStatusBlocked    = "BLOCKED"
)

const (
	TaskPriorityLow    = "LOW"
	TaskPriorityMedium = "MEDIUM"
	TaskPriorityHigh   = "HIGH"
)

func IsValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusBlocked:
		return true
	}
	return false
}

func IsValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID            uuid.UUID  `json:"id"`
	ProjectID     uuid.UUID  `json:"project_id"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	AssigneeID    *uuid.UUID `json:"assignee_id,omitempty"`
	BlockedReason *string    `json:"blocked_reason,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Assignee      *User      `json:"assignee,omitempty"`
}

// BurndownPoint is one daily bucket of the burndown chart: the ideal
// linear remaining count and the actual number of tasks not yet completed
// at the end of that day.
type BurndownPoint struct {
	Date   string  `json:"date"`
	Ideal  float64 `json:"ideal"`
	Actual int     `json:"actual"`
}

type Burndown struct {
	ChartData    []BurndownPoint `json:"chartData"`
	BlockedTasks []Task          `json:"blockedTasks"`
}
