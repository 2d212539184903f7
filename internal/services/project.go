package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/database"
	"github.com/hackhub/hackhub-api/internal/models"
	"github.com/hackhub/hackhub-api/internal/rbac"
)

type ProjectService struct {
	db *database.DB
}

func NewProjectService(db *database.DB) *ProjectService {
	return &ProjectService{db: db}
}

const projectColumns = `id, team_id, name, description,
	submission_github, submission_demo, submission_ppt, submission_video, submission_description,
	created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }, p *models.Project) error {
	return row.Scan(
		&p.ID, &p.TeamID, &p.Name, &p.Description,
		&p.SubmissionGithub, &p.SubmissionDemo, &p.SubmissionPPT, &p.SubmissionVideo, &p.SubmissionDescription,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

// Create inserts the project and its creator's OWNER membership in one
// transaction, so a project always starts with at least one OWNER.
func (s *ProjectService) Create(ctx context.Context, teamID uuid.UUID, name string, description *string, creatorID uuid.UUID) (*models.Project, error) {
	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var project models.Project
	err = scanProject(tx.QueryRow(ctx, `
		INSERT INTO projects (team_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING `+projectColumns, teamID, name, description), &project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
	`, project.ID, creatorID, string(rbac.RoleOwner))
	if err != nil {
		return nil, fmt.Errorf("failed to add creator as owner: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := scanProject(s.db.Pool.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1
	`, projectID), &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) GetTeamProjects(ctx context.Context, teamID uuid.UUID) ([]models.Project, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+projectColumns+` FROM projects
		WHERE team_id = $1
		ORDER BY created_at DESC
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// UpdateParams carries the mutable project fields; nil leaves a field
// unchanged.
type UpdateProjectParams struct {
	Name        *string
	Description *string

	SubmissionGithub      *string
	SubmissionDemo        *string
	SubmissionPPT         *string
	SubmissionVideo       *string
	SubmissionDescription *string
}

func (s *ProjectService) Update(ctx context.Context, projectID uuid.UUID, params UpdateProjectParams) (*models.Project, error) {
	var project models.Project
	err := scanProject(s.db.Pool.QueryRow(ctx, `
		UPDATE projects SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			submission_github = COALESCE($3, submission_github),
			submission_demo = COALESCE($4, submission_demo),
			submission_ppt = COALESCE($5, submission_ppt),
			submission_video = COALESCE($6, submission_video),
			submission_description = COALESCE($7, submission_description),
			updated_at = NOW()
		WHERE id = $8
		RETURNING `+projectColumns,
		params.Name, params.Description,
		params.SubmissionGithub, params.SubmissionDemo, params.SubmissionPPT,
		params.SubmissionVideo, params.SubmissionDescription,
		projectID), &project)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	return err
}
