package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/database"
	"github.com/hackhub/hackhub-api/internal/models"
)

var ErrSnippetNotFound = errors.New("snippet not found")

type SnippetService struct {
	db *database.DB
}

func NewSnippetService(db *database.DB) *SnippetService {
	return &SnippetService{db: db}
}

type CreateSnippetParams struct {
	Title       string
	Language    string
	Code        string
	Description *string
}

func (s *SnippetService) Create(ctx context.Context, projectID, userID uuid.UUID, params CreateSnippetParams) (*models.Snippet, error) {
	var snippet models.Snippet
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO snippets (project_id, user_id, title, language, code, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, project_id, user_id, title, language, code, description, created_at, updated_at
	`, projectID, userID, params.Title, params.Language, params.Code, params.Description).Scan(
		&snippet.ID, &snippet.ProjectID, &snippet.UserID, &snippet.Title, &snippet.Language,
		&snippet.Code, &snippet.Description, &snippet.CreatedAt, &snippet.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create snippet: %w", err)
	}
	return &snippet, nil
}

func (s *SnippetService) GetByID(ctx context.Context, snippetID uuid.UUID) (*models.Snippet, error) {
	var snippet models.Snippet
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, project_id, user_id, title, language, code, description, created_at, updated_at
		FROM snippets WHERE id = $1
	`, snippetID).Scan(
		&snippet.ID, &snippet.ProjectID, &snippet.UserID, &snippet.Title, &snippet.Language,
		&snippet.Code, &snippet.Description, &snippet.CreatedAt, &snippet.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrSnippetNotFound
		}
		return nil, err
	}
	return &snippet, nil
}

func (s *SnippetService) GetProjectSnippets(ctx context.Context, projectID uuid.UUID) ([]models.Snippet, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT sn.id, sn.project_id, sn.user_id, sn.title, sn.language, sn.code, sn.description,
		       sn.created_at, sn.updated_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM snippets sn
		JOIN users u ON sn.user_id = u.id
		WHERE sn.project_id = $1
		ORDER BY sn.created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snippets []models.Snippet
	for rows.Next() {
		var snippet models.Snippet
		var user models.User
		if err := rows.Scan(
			&snippet.ID, &snippet.ProjectID, &snippet.UserID, &snippet.Title, &snippet.Language,
			&snippet.Code, &snippet.Description, &snippet.CreatedAt, &snippet.UpdatedAt,
			&user.ID, &user.Email, &user.Name, &user.AvatarURL, &user.Provider, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		snippet.User = &user
		snippets = append(snippets, snippet)
	}
	return snippets, nil
}

type UpdateSnippetParams struct {
	Title       *string
	Language    *string
	Code        *string
	Description *string
}

func (s *SnippetService) Update(ctx context.Context, snippetID uuid.UUID, params UpdateSnippetParams) (*models.Snippet, error) {
	var snippet models.Snippet
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE snippets SET
			title = COALESCE($1, title),
			language = COALESCE($2, language),
			code = COALESCE($3, code),
			description = COALESCE($4, description),
			updated_at = NOW()
		WHERE id = $5
		RETURNING id, project_id, user_id, title, language, code, description, created_at, updated_at
	`, params.Title, params.Language, params.Code, params.Description, snippetID).Scan(
		&snippet.ID, &snippet.ProjectID, &snippet.UserID, &snippet.Title, &snippet.Language,
		&snippet.Code, &snippet.Description, &snippet.CreatedAt, &snippet.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrSnippetNotFound
		}
		return nil, err
	}
	return &snippet, nil
}

func (s *SnippetService) Delete(ctx context.Context, snippetID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM snippets WHERE id = $1`, snippetID)
	return err
}
