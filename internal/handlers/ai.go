package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// AIHandler exposes the assistant endpoints. Every operation is scoped to
// a project and the prompt is grounded in that project's current state.
type AIHandler struct {
	aiClient       AIClientInterface
	projectService ProjectServiceInterface
	taskService    TaskServiceInterface
}

func NewAIHandler(aiClient AIClientInterface, projectService ProjectServiceInterface, taskService TaskServiceInterface) *AIHandler {
	return &AIHandler{
		aiClient:       aiClient,
		projectService: projectService,
		taskService:    taskService,
	}
}

func (h *AIHandler) Chat(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.AIChatRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Message == "" {
		c.BadRequest("message is required")
		return
	}

	projectContext, err := h.buildProjectContext(context.Background(), projectID)
	if err != nil {
		c.NotFound("project not found")
		return
	}

	reply, err := h.aiClient.Chat(c.Request.Context(), projectContext, req.Message)
	if err != nil {
		c.InternalServerError("failed to get AI response")
		return
	}

	_ = c.JSON(200, dto.AIChatResponse{Reply: reply})
}

func (h *AIHandler) GenerateTasks(c *drift.Context) {
	if _, err := uuid.Parse(c.Param("projectId")); err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.GenerateTasksRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Description == "" {
		c.BadRequest("description is required")
		return
	}

	suggestions, err := h.aiClient.GenerateTasks(c.Request.Context(), req.Description)
	if err != nil {
		c.InternalServerError("failed to generate tasks")
		return
	}

	_ = c.JSON(200, suggestions)
}

func (h *AIHandler) ExplainSnippet(c *drift.Context) {
	var req dto.ExplainSnippetRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Code == "" {
		c.BadRequest("code is required")
		return
	}

	explanation, err := h.aiClient.ExplainSnippet(c.Request.Context(), req.Language, req.Code)
	if err != nil {
		c.InternalServerError("failed to explain snippet")
		return
	}

	_ = c.JSON(200, dto.ExplainSnippetResponse{Explanation: explanation})
}

func (h *AIHandler) SummarizeProject(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	projectContext, err := h.buildProjectContext(context.Background(), projectID)
	if err != nil {
		c.NotFound("project not found")
		return
	}

	summary, err := h.aiClient.SummarizeProject(c.Request.Context(), projectContext)
	if err != nil {
		c.InternalServerError("failed to summarize project")
		return
	}

	_ = c.JSON(200, dto.SummarizeProjectResponse{Summary: summary})
}

// buildProjectContext renders the project and its task board into the
// plain-text context block fed to the model.
func (h *AIHandler) buildProjectContext(ctx context.Context, projectID uuid.UUID) (string, error) {
	project, err := h.projectService.GetByID(ctx, projectID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Project: %s\n", project.Name)
	if project.Description != nil && *project.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", *project.Description)
	}

	tasks, err := h.taskService.GetProjectTasks(ctx, projectID)
	if err == nil && len(tasks) > 0 {
		sb.WriteString("Tasks:\n")
		for _, task := range tasks {
			fmt.Fprintf(&sb, "- [%s] %s (%s)\n", task.Status, task.Title, task.Priority)
		}
	}

	return sb.String(), nil
}
