package rbac

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hackhub/hackhub-api/internal/models"
)

var (
	// ErrMissingActor: no acting user could be identified. 403-class.
	ErrMissingActor = errors.New("user id required for access check")
	// ErrMissingProject: no project scoping was supplied. The guard never
	// infers the project from a related entity. 400-class.
	ErrMissingProject = errors.New("project id required for access check")
	// ErrNotAMember: the actor has no membership row for the project.
	ErrNotAMember = errors.New("you are not a member of this project")
	// ErrMembershipNotFound is returned by a MembershipSource when no row
	// exists for the (user, project) pair.
	ErrMembershipNotFound = errors.New("membership not found")
)

// InsufficientRoleError is returned when the actor's role level is below
// the operation's minimum. It carries the required roles so the response
// can name them.
type InsufficientRoleError struct {
	Required []Role
}

func (e *InsufficientRoleError) Error() string {
	names := make([]string, len(e.Required))
	for i, r := range e.Required {
		names[i] = string(r)
	}
	return fmt.Sprintf("insufficient permissions, required: %s", strings.Join(names, ", "))
}

// MembershipSource resolves the membership record for a (user, project)
// pair. Implementations return ErrMembershipNotFound (possibly wrapped)
// when no record exists.
type MembershipSource interface {
	FindMembership(ctx context.Context, userID, projectID string) (*models.ProjectMember, error)
}

// Guard decides whether an actor may perform an operation against a
// project, given the operation's minimum-required-role set. It is
// read-only: its only side effect is the membership lookup, and it holds
// no state between calls, so the current stored role is re-evaluated on
// every check.
type Guard struct {
	memberships MembershipSource
}

func NewGuard(memberships MembershipSource) *Guard {
	return &Guard{memberships: memberships}
}

// Authorize allows or rejects the operation. An empty required set allows
// unconditionally. A caller whose role level is at least the minimum level
// of the required set passes; listing only {OWNER} is how an operation
// requires exactly owner-level access.
//
// Every failure is terminal for the operation; nothing here is retryable.
func (g *Guard) Authorize(ctx context.Context, actorID, projectID string, required ...Role) error {
	if len(required) == 0 {
		return nil
	}

	if actorID == "" {
		return ErrMissingActor
	}
	if projectID == "" {
		return ErrMissingProject
	}

	membership, err := g.memberships.FindMembership(ctx, actorID, projectID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return ErrNotAMember
		}
		return fmt.Errorf("membership lookup failed: %w", err)
	}

	if Role(membership.Role).Level() < MinLevel(required) {
		return &InsufficientRoleError{Required: required}
	}

	return nil
}
