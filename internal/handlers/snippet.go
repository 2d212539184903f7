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

type SnippetHandler struct {
	snippetService SnippetServiceInterface
	aiClient       AIClientInterface
	hub            HubInterface
}

func NewSnippetHandler(snippetService SnippetServiceInterface, aiClient AIClientInterface, hub HubInterface) *SnippetHandler {
	return &SnippetHandler{
		snippetService: snippetService,
		aiClient:       aiClient,
		hub:            hub,
	}
}

func (h *SnippetHandler) Create(c *drift.Context) {
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

	var req dto.CreateSnippetRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Title == "" || req.Code == "" {
		c.BadRequest("title and code are required")
		return
	}

	snippet, err := h.snippetService.Create(context.Background(), projectID, userID, services.CreateSnippetParams{
		Title:       req.Title,
		Language:    req.Language,
		Code:        req.Code,
		Description: req.Description,
	})
	if err != nil {
		c.InternalServerError("failed to create snippet")
		return
	}

	h.hub.BroadcastSnippetCreated(projectID, userID, snippet)

	_ = c.JSON(201, snippet)
}

func (h *SnippetHandler) List(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	snippets, err := h.snippetService.GetProjectSnippets(context.Background(), projectID)
	if err != nil {
		c.InternalServerError("failed to get snippets")
		return
	}

	_ = c.JSON(200, snippets)
}

func (h *SnippetHandler) Get(c *drift.Context) {
	snippetID, err := uuid.Parse(c.Param("snippetId"))
	if err != nil {
		c.BadRequest("invalid snippet id")
		return
	}

	snippet, err := h.snippetService.GetByID(context.Background(), snippetID)
	if err != nil {
		if errors.Is(err, services.ErrSnippetNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to get snippet")
		return
	}

	_ = c.JSON(200, snippet)
}

func (h *SnippetHandler) Update(c *drift.Context) {
	snippetID, err := uuid.Parse(c.Param("snippetId"))
	if err != nil {
		c.BadRequest("invalid snippet id")
		return
	}

	var req dto.UpdateSnippetRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	snippet, err := h.snippetService.Update(context.Background(), snippetID, services.UpdateSnippetParams{
		Title:       req.Title,
		Language:    req.Language,
		Code:        req.Code,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, services.ErrSnippetNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to update snippet")
		return
	}

	_ = c.JSON(200, snippet)
}

func (h *SnippetHandler) Delete(c *drift.Context) {
	snippetID, err := uuid.Parse(c.Param("snippetId"))
	if err != nil {
		c.BadRequest("invalid snippet id")
		return
	}

	if err := h.snippetService.Delete(context.Background(), snippetID); err != nil {
		if errors.Is(err, services.ErrSnippetNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to delete snippet")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "snippet deleted"})
}

// Explain runs the stored snippet through the AI client and returns a
// plain-text explanation.
func (h *SnippetHandler) Explain(c *drift.Context) {
	snippetID, err := uuid.Parse(c.Param("snippetId"))
	if err != nil {
		c.BadRequest("invalid snippet id")
		return
	}

	snippet, err := h.snippetService.GetByID(context.Background(), snippetID)
	if err != nil {
		if errors.Is(err, services.ErrSnippetNotFound) {
			c.NotFound(err.Error())
			return
		}
		c.InternalServerError("failed to get snippet")
		return
	}

	explanation, err := h.aiClient.ExplainSnippet(c.Request.Context(), snippet.Language, snippet.Code)
	if err != nil {
		c.InternalServerError("failed to explain snippet")
		return
	}

	_ = c.JSON(200, dto.ExplainSnippetResponse{Explanation: explanation})
}
