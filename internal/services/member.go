package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/database"
	"github.com/hackhub/hackhub-api/internal/models"
	"github.com/hackhub/hackhub-api/internal/rbac"
)

var (
	ErrUserNotFound         = errors.New("user with this email not found")
	ErrAlreadyProjectMember = errors.New("user is already a member of this project")
)

// MemberService manages project memberships and is the guard's
// MembershipSource.
type MemberService struct {
	db *database.DB
}

func NewMemberService(db *database.DB) *MemberService {
	return &MemberService{db: db}
}

// FindMembership resolves the (user, project) membership record. Returns
// rbac.ErrMembershipNotFound when no row exists, and when either id is not
// a valid UUID: a malformed id cannot match any membership, and the guard
// must treat it as a non-member rather than a server fault.
func (s *MemberService) FindMembership(ctx context.Context, userID, projectID string) (*models.ProjectMember, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, rbac.ErrMembershipNotFound
	}
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, rbac.ErrMembershipNotFound
	}

	var member models.ProjectMember
	err = s.db.Pool.QueryRow(ctx, `
		SELECT id, project_id, user_id, role, created_at
		FROM project_members
		WHERE user_id = $1 AND project_id = $2
	`, uid, pid).Scan(&member.ID, &member.ProjectID, &member.UserID, &member.Role, &member.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, rbac.ErrMembershipNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) GetProjectMembers(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT pm.id, pm.project_id, pm.user_id, pm.role, pm.created_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM project_members pm
		JOIN users u ON pm.user_id = u.id
		WHERE pm.project_id = $1
		ORDER BY pm.created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.ProjectMember
	for rows.Next() {
		var member models.ProjectMember
		var user models.User
		if err := rows.Scan(
			&member.ID, &member.ProjectID, &member.UserID, &member.Role, &member.CreatedAt,
			&user.ID, &user.Email, &user.Name, &user.AvatarURL, &user.Provider, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		member.User = &user
		members = append(members, member)
	}
	return members, nil
}

// Invite resolves the email to a user and creates the membership with the
// requested role, defaulting to VIEWER. Fails with ErrUserNotFound when no
// account exists for the email, ErrAlreadyProjectMember when a membership
// row already exists, and rbac.ErrInvalidRole for unknown role strings.
func (s *MemberService) Invite(ctx context.Context, projectID uuid.UUID, email, roleStr string) (*models.ProjectMember, error) {
	role := rbac.RoleViewer
	if roleStr != "" {
		parsed, err := rbac.ParseRole(roleStr)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	var userID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&userID)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var exists bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)
	`, projectID, userID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyProjectMember
	}

	var member models.ProjectMember
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
		RETURNING id, project_id, user_id, role, created_at
	`, projectID, userID, string(role)).Scan(
		&member.ID, &member.ProjectID, &member.UserID, &member.Role, &member.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}
	return &member, nil
}

// UpdateRole overwrites the membership's role after validating the new
// role string. Unknown roles are rejected with rbac.ErrInvalidRole before
// any write.
func (s *MemberService) UpdateRole(ctx context.Context, projectID, userID uuid.UUID, roleStr string) (*models.ProjectMember, error) {
	role, err := rbac.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}

	var member models.ProjectMember
	err = s.db.Pool.QueryRow(ctx, `
		UPDATE project_members SET role = $1
		WHERE project_id = $2 AND user_id = $3
		RETURNING id, project_id, user_id, role, created_at
	`, string(role), projectID, userID).Scan(
		&member.ID, &member.ProjectID, &member.UserID, &member.Role, &member.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, rbac.ErrMembershipNotFound
		}
		return nil, err
	}
	return &member, nil
}

// Remove deletes the membership. Deleting a membership that does not
// exist is a no-op, so removal is idempotent.
func (s *MemberService) Remove(ctx context.Context, projectID, userID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND user_id = $2
	`, projectID, userID)
	return err
}
