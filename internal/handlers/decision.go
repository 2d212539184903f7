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

type DecisionHandler struct {
	decisionService DecisionServiceInterface
	hub             HubInterface
}

func NewDecisionHandler(decisionService DecisionServiceInterface, hub HubInterface) *DecisionHandler {
	return &DecisionHandler{
		decisionService: decisionService,
		hub:             hub,
	}
}

func (h *DecisionHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.CreateDecisionRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		c.BadRequest("title and content are required")
		return
	}

	decision, err := h.decisionService.Create(context.Background(), projectID, userID, services.CreateDecisionParams{
		Title:   req.Title,
		Content: req.Content,
		TaskID:  req.TaskID,
	})
	if err != nil {
		c.InternalServerError("failed to create decision")
		return
	}

	h.hub.BroadcastDecisionCreated(projectID, userID, decision)

	_ = c.JSON(201, decision)
}

func (h *DecisionHandler) List(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	decisions, err := h.decisionService.GetProjectDecisions(context.Background(), projectID)
	if err != nil {
		c.InternalServerError("failed to get decisions")
		return
	}

	_ = c.JSON(200, decisions)
}

func (h *DecisionHandler) Get(c *drift.Context) {
	decisionID, err := uuid.Parse(c.Param("decisionId"))
	if err != nil {
		c.BadRequest("invalid decision id")
		return
	}

	decision, err := h.decisionService.GetByID(context.Background(), decisionID)
	if err != nil {
		if errors.Is(err, services.ErrDecisionNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to get decision")
		return
	}

	_ = c.JSON(200, decision)
}

func (h *DecisionHandler) AddNote(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	decisionID, err := uuid.Parse(c.Param("decisionId"))
	if err != nil {
		c.BadRequest("invalid decision id")
		return
	}

	var req dto.AddDecisionNoteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Content == "" {
		c.BadRequest("content is required")
		return
	}

	note, err := h.decisionService.AddNote(context.Background(), decisionID, userID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrDecisionNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to add note")
		return
	}

	_ = c.JSON(201, note)
}

func (h *DecisionHandler) GetNotes(c *drift.Context) {
	decisionID, err := uuid.Parse(c.Param("decisionId"))
	if err != nil {
		c.BadRequest("invalid decision id")
		return
	}

	notes, err := h.decisionService.GetNotes(context.Background(), decisionID)
	if err != nil {
		c.InternalServerError("failed to get notes")
		return
	}

	_ = c.JSON(200, notes)
}

func (h *DecisionHandler) Delete(c *drift.Context) {
	decisionID, err := uuid.Parse(c.Param("decisionId"))
	if err != nil {
		c.BadRequest("invalid decision id")
		return
	}

	if err := h.decisionService.Delete(context.Background(), decisionID); err != nil {
		if errors.Is(err, services.ErrDecisionNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to delete decision")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "decision deleted"})
}
