package rbac

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hackhub/hackhub-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMemberships maps "userID/projectID" to a stored role string.
type stubMemberships struct {
	roles   map[string]string
	lookups int
	err     error
}

func (s *stubMemberships) FindMembership(_ context.Context, userID, projectID string) (*models.ProjectMember, error) {
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	role, ok := s.roles[userID+"/"+projectID]
	if !ok {
		return nil, ErrMembershipNotFound
	}
	return &models.ProjectMember{Role: role}, nil
}

func newStub(roles map[string]string) *stubMemberships {
	return &stubMemberships{roles: roles}
}

func TestRoleLevel(t *testing.T) {
	assert.Equal(t, 3, RoleOwner.Level())
	assert.Equal(t, 2, RoleEditor.Level())
	assert.Equal(t, 1, RoleViewer.Level())
	assert.Equal(t, 0, Role("ADMIN").Level())
	assert.Equal(t, 0, Role("").Level())
	assert.Equal(t, 0, Role("owner").Level(), "role strings are case sensitive")
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"OWNER", "EDITOR", "VIEWER"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, string(role))
	}

	for _, invalid := range []string{"", "owner", "Viewer", "ADMIN", "SUPERUSER"} {
		_, err := ParseRole(invalid)
		assert.ErrorIs(t, err, ErrInvalidRole, "%q should not parse", invalid)
	}
}

func TestMinLevel(t *testing.T) {
	assert.Equal(t, 0, MinLevel(nil))
	assert.Equal(t, 3, MinLevel([]Role{RoleOwner}))
	assert.Equal(t, 2, MinLevel([]Role{RoleEditor, RoleOwner}))
	assert.Equal(t, 1, MinLevel([]Role{RoleOwner, RoleEditor, RoleViewer}))
	assert.Equal(t, 0, MinLevel([]Role{RoleOwner, Role("BOGUS")}))
}

func TestGuard_NoRequirementAllowsAnything(t *testing.T) {
	source := newStub(nil)
	guard := NewGuard(source)

	require.NoError(t, guard.Authorize(context.Background(), "", ""))
	require.NoError(t, guard.Authorize(context.Background(), "someone", "some-project"))
	assert.Zero(t, source.lookups, "pass-through must not touch the store")
}

func TestGuard_MissingActor(t *testing.T) {
	guard := NewGuard(newStub(nil))

	err := guard.Authorize(context.Background(), "", "project-1", RoleViewer)
	assert.ErrorIs(t, err, ErrMissingActor)
}

func TestGuard_MissingProject(t *testing.T) {
	guard := NewGuard(newStub(nil))

	err := guard.Authorize(context.Background(), "user-1", "", RoleViewer)
	assert.ErrorIs(t, err, ErrMissingProject)
}

func TestGuard_NotAMember(t *testing.T) {
	guard := NewGuard(newStub(map[string]string{
		"user-2/project-1": "OWNER",
	}))

	for _, required := range [][]Role{
		{RoleViewer},
		{RoleEditor},
		{RoleOwner},
	} {
		err := guard.Authorize(context.Background(), "user-1", "project-1", required...)
		assert.ErrorIs(t, err, ErrNotAMember)
	}
}

func TestGuard_RoleHierarchy(t *testing.T) {
	// Every caller role at or above the required role passes; every caller
	// role below it fails with InsufficientRoleError.
	roles := []Role{RoleViewer, RoleEditor, RoleOwner}

	for _, callerRole := range roles {
		for _, requiredRole := range roles {
			t.Run(fmt.Sprintf("%s_requires_%s", callerRole, requiredRole), func(t *testing.T) {
				guard := NewGuard(newStub(map[string]string{
					"user-1/project-1": string(callerRole),
				}))

				err := guard.Authorize(context.Background(), "user-1", "project-1", requiredRole)

				if callerRole.Level() >= requiredRole.Level() {
					assert.NoError(t, err)
				} else {
					var insufficient *InsufficientRoleError
					require.ErrorAs(t, err, &insufficient)
					assert.Equal(t, []Role{requiredRole}, insufficient.Required)
				}
			})
		}
	}
}

func TestGuard_MinimumOfSetRule(t *testing.T) {
	// {EDITOR, OWNER} is equivalent to {EDITOR} alone.
	guard := NewGuard(newStub(map[string]string{
		"editor/project-1": "EDITOR",
		"viewer/project-1": "VIEWER",
	}))
	ctx := context.Background()

	require.NoError(t, guard.Authorize(ctx, "editor", "project-1", RoleEditor, RoleOwner))
	require.NoError(t, guard.Authorize(ctx, "editor", "project-1", RoleEditor))

	err := guard.Authorize(ctx, "viewer", "project-1", RoleEditor, RoleOwner)
	var insufficient *InsufficientRoleError
	require.ErrorAs(t, err, &insufficient)

	err = guard.Authorize(ctx, "viewer", "project-1", RoleEditor)
	require.ErrorAs(t, err, &insufficient)
}

func TestGuard_InsufficientRoleNamesRequirement(t *testing.T) {
	guard := NewGuard(newStub(map[string]string{
		"user-1/project-1": "VIEWER",
	}))

	err := guard.Authorize(context.Background(), "user-1", "project-1", RoleEditor)

	var insufficient *InsufficientRoleError
	require.ErrorAs(t, err, &insufficient)
	assert.Contains(t, err.Error(), "EDITOR")

	err = guard.Authorize(context.Background(), "user-1", "project-1", RoleEditor, RoleOwner)
	require.ErrorAs(t, err, &insufficient)
	assert.Contains(t, err.Error(), "EDITOR")
	assert.Contains(t, err.Error(), "OWNER")
}

func TestGuard_ViewerScenario(t *testing.T) {
	guard := NewGuard(newStub(map[string]string{
		"actor-a/project-p": "VIEWER",
	}))
	ctx := context.Background()

	err := guard.Authorize(ctx, "actor-a", "project-p", RoleEditor)
	var insufficient *InsufficientRoleError
	require.ErrorAs(t, err, &insufficient)

	require.NoError(t, guard.Authorize(ctx, "actor-a", "project-p", RoleViewer))
}

func TestGuard_UnknownStoredRoleNeverPasses(t *testing.T) {
	// A stored role that matches no known role maps to level 0 and fails
	// even the lowest requirement.
	guard := NewGuard(newStub(map[string]string{
		"user-1/project-1": "SUPREME_LEADER",
	}))

	err := guard.Authorize(context.Background(), "user-1", "project-1", RoleViewer)
	var insufficient *InsufficientRoleError
	require.ErrorAs(t, err, &insufficient)
}

func TestGuard_ReEvaluatesStoredRoleEveryCall(t *testing.T) {
	source := newStub(map[string]string{
		"user-1/project-1": "OWNER",
	})
	guard := NewGuard(source)
	ctx := context.Background()

	require.NoError(t, guard.Authorize(ctx, "user-1", "project-1", RoleOwner))

	// The owner demotes themselves; the next owner-gated call must fail.
	source.roles["user-1/project-1"] = "VIEWER"

	err := guard.Authorize(ctx, "user-1", "project-1", RoleOwner)
	var insufficient *InsufficientRoleError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 2, source.lookups)
}

func TestGuard_LookupErrorPropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	guard := NewGuard(&stubMemberships{err: storeErr})

	err := guard.Authorize(context.Background(), "user-1", "project-1", RoleViewer)
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrNotAMember, "store failures must stay distinguishable from authorization denials")
}
