package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/middleware"
	"github.com/hackhub/hackhub-api/internal/services"
	"github.com/hackhub/hackhub-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type ProjectHandler struct {
	projectService ProjectServiceInterface
	teamService    TeamServiceInterface
}

func NewProjectHandler(projectService ProjectServiceInterface, teamService TeamServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		teamService:    teamService,
	}
}

// Create adds a project under a team. Any team member can create one;
// the creator becomes the project's OWNER.
func (h *ProjectHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	isMember, err := h.teamService.IsMember(context.Background(), teamID, userID)
	if err != nil || !isMember {
		c.NotFound("team not found")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	project, err := h.projectService.Create(context.Background(), teamID, req.Name, req.Description, userID)
	if err != nil {
		c.InternalServerError("failed to create project")
		return
	}

	_ = c.JSON(201, project)
}

func (h *ProjectHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	isMember, err := h.teamService.IsMember(context.Background(), teamID, userID)
	if err != nil || !isMember {
		c.NotFound("team not found")
		return
	}

	projects, err := h.projectService.GetTeamProjects(context.Background(), teamID)
	if err != nil {
		c.InternalServerError("failed to get projects")
		return
	}

	_ = c.JSON(200, projects)
}

func (h *ProjectHandler) Get(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	project, err := h.projectService.GetByID(context.Background(), projectID)
	if err != nil {
		c.NotFound("project not found")
		return
	}

	_ = c.JSON(200, project)
}

func (h *ProjectHandler) Update(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	project, err := h.projectService.Update(context.Background(), projectID, services.UpdateProjectParams{
		Name:                  req.Name,
		Description:           req.Description,
		SubmissionGithub:      req.SubmissionGithub,
		SubmissionDemo:        req.SubmissionDemo,
		SubmissionPPT:         req.SubmissionPPT,
		SubmissionVideo:       req.SubmissionVideo,
		SubmissionDescription: req.SubmissionDescription,
	})
	if err != nil {
		c.NotFound("project not found")
		return
	}

	_ = c.JSON(200, project)
}

func (h *ProjectHandler) Delete(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	if err := h.projectService.Delete(context.Background(), projectID); err != nil {
		c.InternalServerError("failed to delete project")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "project deleted"})
}
