package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID `json:"id"`
	TeamID      uuid.UUID `json:"team_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`

	SubmissionGithub      *string `json:"submission_github,omitempty"`
	SubmissionDemo        *string `json:"submission_demo,omitempty"`
	SubmissionPPT         *string `json:"submission_ppt,omitempty"`
	SubmissionVideo       *string `json:"submission_video,omitempty"`
	SubmissionDescription *string `json:"submission_description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectMember is the (user, project, role) authorization record. Role
// holds one of the rbac role strings; unknown values never grant access.
type ProjectMember struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `json:"user,omitempty"`
}
