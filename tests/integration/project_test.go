package integration

import (
	"context"
	"testing"

	"github.com/hackhub/hackhub-api/internal/rbac"
	"github.com/hackhub/hackhub-api/internal/services"
	"github.com/hackhub/hackhub-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Integration_CreateEnrollsCreatorAsOwner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	projectService := services.NewProjectService(tdb.DB)
	memberService := services.NewMemberService(tdb.DB)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, creator)

	project, err := projectService.Create(ctx, team.ID, "Sprint Demo", nil, creator.ID)

	require.NoError(t, err)
	assert.NotEmpty(t, project.ID)
	assert.Equal(t, team.ID, project.TeamID)

	membership, err := memberService.FindMembership(ctx, creator.ID.String(), project.ID.String())
	require.NoError(t, err)
	assert.Equal(t, string(rbac.RoleOwner), membership.Role)
}

func TestProjectService_Integration_UpdateSubmission(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	projectService := services.NewProjectService(tdb.DB)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, creator)
	project := fixtures.CreateProject(t, team, creator)

	github := "https://github.com/acme/demo"
	demo := "https://demo.example.com"

	updated, err := projectService.Update(ctx, project.ID, services.UpdateProjectParams{
		SubmissionGithub: &github,
		SubmissionDemo:   &demo,
	})

	require.NoError(t, err)
	require.NotNil(t, updated.SubmissionGithub)
	assert.Equal(t, github, *updated.SubmissionGithub)
	require.NotNil(t, updated.SubmissionDemo)
	assert.Equal(t, demo, *updated.SubmissionDemo)
	assert.Equal(t, project.Name, updated.Name)
}

func TestProjectService_Integration_DeleteCascadesMemberships(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	projectService := services.NewProjectService(tdb.DB)
	memberService := services.NewMemberService(tdb.DB)
	ctx := context.Background()

	creator := fixtures.CreateUser(t)
	team := fixtures.CreateTeam(t, creator)
	project := fixtures.CreateProject(t, team, creator)

	err := projectService.Delete(ctx, project.ID)
	require.NoError(t, err)

	_, err = projectService.GetByID(ctx, project.ID)
	assert.Error(t, err)

	_, err = memberService.FindMembership(ctx, creator.ID.String(), project.ID.String())
	assert.ErrorIs(t, err, rbac.ErrMembershipNotFound)
}
