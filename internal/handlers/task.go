package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/middleware"
	"github.com/hackhub/hackhub-api/internal/services"
	"github.com/hackhub/hackhub-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type TaskHandler struct {
	taskService TaskServiceInterface
	hub         HubInterface
}

func NewTaskHandler(taskService TaskServiceInterface, hub HubInterface) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		hub:         hub,
	}
}

func (h *TaskHandler) Create(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Title == "" {
		c.BadRequest("title is required")
		return
	}

	task, err := h.taskService.Create(context.Background(), projectID, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidPriority) {
			c.BadRequest(err.Error())
			return
		}
		c.InternalServerError("failed to create task")
		return
	}

	h.hub.BroadcastTaskCreated(projectID, middleware.GetUserID(c), task)

	_ = c.JSON(201, task)
}

func (h *TaskHandler) List(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	tasks, err := h.taskService.GetProjectTasks(context.Background(), projectID)
	if err != nil {
		c.InternalServerError("failed to get tasks")
		return
	}

	_ = c.JSON(200, tasks)
}

func (h *TaskHandler) Get(c *drift.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	task, err := h.taskService.GetByID(context.Background(), taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to get task")
		return
	}

	_ = c.JSON(200, task)
}

func (h *TaskHandler) Update(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	task, err := h.taskService.Update(context.Background(), taskID, services.UpdateTaskParams{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		Priority:      req.Priority,
		AssigneeID:    req.AssigneeID,
		BlockedReason: req.BlockedReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.NotFound(err.Error())
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidPriority):
			c.BadRequest(err.Error())
		default:
			c.InternalServerError("failed to update task")
		}
		return
	}

	h.hub.BroadcastTaskUpdated(projectID, middleware.GetUserID(c), task)

	_ = c.JSON(200, task)
}

func (h *TaskHandler) Delete(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	if err := h.taskService.Delete(context.Background(), taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to delete task")
		return
	}

	h.hub.BroadcastTaskDeleted(projectID, taskID, middleware.GetUserID(c))

	_ = c.JSON(200, map[string]string{"message": "task deleted"})
}

// Burndown returns the per-day remaining-work series plus the currently
// blocked tasks for the project.
func (h *TaskHandler) Burndown(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	burndown, err := h.taskService.Burndown(context.Background(), projectID)
	if err != nil {
		c.InternalServerError("failed to compute burndown")
		return
	}

	_ = c.JSON(200, burndown)
}
