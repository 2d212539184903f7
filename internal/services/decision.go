package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/database"
	"github.com/hackhub/hackhub-api/internal/models"
)

var ErrDecisionNotFound = errors.New("decision not found")

type DecisionService struct {
	db *database.DB
}

func NewDecisionService(db *database.DB) *DecisionService {
	return &DecisionService{db: db}
}

type CreateDecisionParams struct {
	Title   string
	Content string
	TaskID  *uuid.UUID
}

func (s *DecisionService) Create(ctx context.Context, projectID, userID uuid.UUID, params CreateDecisionParams) (*models.Decision, error) {
	var decision models.Decision
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO decisions (project_id, user_id, title, content, status, task_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, project_id, user_id, title, content, status, task_id, created_at
	`, projectID, userID, params.Title, params.Content, models.DecisionStatusDecided, params.TaskID).Scan(
		&decision.ID, &decision.ProjectID, &decision.UserID, &decision.Title,
		&decision.Content, &decision.Status, &decision.TaskID, &decision.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create decision: %w", err)
	}
	return &decision, nil
}

func (s *DecisionService) GetByID(ctx context.Context, decisionID uuid.UUID) (*models.Decision, error) {
	var decision models.Decision
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, project_id, user_id, title, content, status, task_id, created_at
		FROM decisions WHERE id = $1
	`, decisionID).Scan(
		&decision.ID, &decision.ProjectID, &decision.UserID, &decision.Title,
		&decision.Content, &decision.Status, &decision.TaskID, &decision.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrDecisionNotFound
		}
		return nil, err
	}
	return &decision, nil
}

func (s *DecisionService) GetProjectDecisions(ctx context.Context, projectID uuid.UUID) ([]models.Decision, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT d.id, d.project_id, d.user_id, d.title, d.content, d.status, d.task_id, d.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM decisions d
		JOIN users u ON d.user_id = u.id
		WHERE d.project_id = $1
		ORDER BY d.created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []models.Decision
	for rows.Next() {
		var decision models.Decision
		var user models.User
		if err := rows.Scan(
			&decision.ID, &decision.ProjectID, &decision.UserID, &decision.Title,
			&decision.Content, &decision.Status, &decision.TaskID, &decision.CreatedAt,
			&user.ID, &user.Email, &user.Name, &user.AvatarURL, &user.Provider, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		decision.User = &user
		decisions = append(decisions, decision)
	}
	return decisions, nil
}

// AddNote appends a note to an existing decision. The decision must
// exist, otherwise ErrDecisionNotFound.
func (s *DecisionService) AddNote(ctx context.Context, decisionID, userID uuid.UUID, content string) (*models.DecisionNote, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM decisions WHERE id = $1)
	`, decisionID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDecisionNotFound
	}

	var note models.DecisionNote
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO decision_notes (decision_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, decision_id, user_id, content, created_at
	`, decisionID, userID, content).Scan(
		&note.ID, &note.DecisionID, &note.UserID, &note.Content, &note.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	return &note, nil
}

func (s *DecisionService) GetNotes(ctx context.Context, decisionID uuid.UUID) ([]models.DecisionNote, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT n.id, n.decision_id, n.user_id, n.content, n.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM decision_notes n
		JOIN users u ON n.user_id = u.id
		WHERE n.decision_id = $1
		ORDER BY n.created_at
	`, decisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []models.DecisionNote
	for rows.Next() {
		var note models.DecisionNote
		var user models.User
		if err := rows.Scan(
			&note.ID, &note.DecisionID, &note.UserID, &note.Content, &note.CreatedAt,
			&user.ID, &user.Email, &user.Name, &user.AvatarURL, &user.Provider, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		note.User = &user
		notes = append(notes, note)
	}
	return notes, nil
}

func (s *DecisionService) Delete(ctx context.Context, decisionID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM decisions WHERE id = $1`, decisionID)
	return err
}
