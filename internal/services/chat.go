package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/database"
	"github.com/hackhub/hackhub-api/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

type ChatService struct {
	db *database.DB
}

func NewChatService(db *database.DB) *ChatService {
	return &ChatService{db: db}
}

// SaveMessage persists a chat message. projectID is nil for team-wide
// rooms and set for project rooms.
func (s *ChatService) SaveMessage(ctx context.Context, teamID uuid.UUID, projectID *uuid.UUID, senderID uuid.UUID, content string) (*models.Message, error) {
	var msg models.Message
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO messages (team_id, project_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING id, team_id, project_id, sender_id, content, is_pinned, created_at
	`, teamID, projectID, senderID, content).Scan(
		&msg.ID, &msg.TeamID, &msg.ProjectID, &msg.SenderID, &msg.Content, &msg.IsPinned, &msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return &msg, nil
}

// GetRecentMessages returns the last `limit` messages of a room in
// chronological order.
func (s *ChatService) GetRecentMessages(ctx context.Context, teamID uuid.UUID, projectID *uuid.UUID, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT m.id, m.team_id, m.project_id, m.sender_id, m.content, m.is_pinned, m.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.team_id = $1 AND m.project_id IS NULL
		ORDER BY m.created_at DESC
		LIMIT $2`
	args := []any{teamID, limit}
	if projectID != nil {
		query = `
		SELECT m.id, m.team_id, m.project_id, m.sender_id, m.content, m.is_pinned, m.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.team_id = $1 AND m.project_id = $2
		ORDER BY m.created_at DESC
		LIMIT $3`
		args = []any{teamID, *projectID, limit}
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		var sender models.User
		if err := rows.Scan(
			&msg.ID, &msg.TeamID, &msg.ProjectID, &msg.SenderID, &msg.Content, &msg.IsPinned, &msg.CreatedAt,
			&sender.ID, &sender.Email, &sender.Name, &sender.AvatarURL, &sender.Provider, &sender.CreatedAt, &sender.UpdatedAt,
		); err != nil {
			return nil, err
		}
		msg.Sender = &sender
		messages = append(messages, msg)
	}

	// Rows come back newest first, flip to chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *ChatService) PinMessage(ctx context.Context, messageID uuid.UUID, pinned bool) (*models.Message, error) {
	var msg models.Message
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE messages SET is_pinned = $1
		WHERE id = $2
		RETURNING id, team_id, project_id, sender_id, content, is_pinned, created_at
	`, pinned, messageID).Scan(
		&msg.ID, &msg.TeamID, &msg.ProjectID, &msg.SenderID, &msg.Content, &msg.IsPinned, &msg.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func (s *ChatService) GetPinnedMessages(ctx context.Context, teamID uuid.UUID, projectID *uuid.UUID) ([]models.Message, error) {
	query := `
		SELECT m.id, m.team_id, m.project_id, m.sender_id, m.content, m.is_pinned, m.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.team_id = $1 AND m.project_id IS NULL AND m.is_pinned
		ORDER BY m.created_at`
	args := []any{teamID}
	if projectID != nil {
		query = `
		SELECT m.id, m.team_id, m.project_id, m.sender_id, m.content, m.is_pinned, m.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.team_id = $1 AND m.project_id = $2 AND m.is_pinned
		ORDER BY m.created_at`
		args = []any{teamID, *projectID}
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var msg models.Message
		var sender models.User
		if err := rows.Scan(
			&msg.ID, &msg.TeamID, &msg.ProjectID, &msg.SenderID, &msg.Content, &msg.IsPinned, &msg.CreatedAt,
			&sender.ID, &sender.Email, &sender.Name, &sender.AvatarURL, &sender.Provider, &sender.CreatedAt, &sender.UpdatedAt,
		); err != nil {
			return nil, err
		}
		msg.Sender = &sender
		messages = append(messages, msg)
	}
	return messages, nil
}
