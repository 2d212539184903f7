package dto

import "github.com/google/uuid"

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	SubmissionGithub      *string `json:"submission_github"`
	SubmissionDemo        *string `json:"submission_demo"`
	SubmissionPPT         *string `json:"submission_ppt"`
	SubmissionVideo       *string `json:"submission_video"`
	SubmissionDescription *string `json:"submission_description"`
}

type InviteProjectMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UpdateProjectMemberRequest struct {
	Role string `json:"role"`
}

type ProjectMemberResponse struct {
	ID     uuid.UUID    `json:"id"`
	UserID uuid.UUID    `json:"user_id"`
	Role   string       `json:"role"`
	User   UserResponse `json:"user"`
}
