package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/middleware"
	"github.com/hackhub/hackhub-api/internal/rbac"
	"github.com/hackhub/hackhub-api/internal/services"
	"github.com/hackhub/hackhub-api/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

// MemberHandler serves project membership reads and mutations. The role
// requirements (OWNER for mutations, VIEWER for reads) are enforced by
// the route middleware, not here.
type MemberHandler struct {
	memberService  MemberServiceInterface
	projectService ProjectServiceInterface
	userService    UserServiceInterface
	emailService   EmailServiceInterface
	hub            HubInterface
}

func NewMemberHandler(
	memberService MemberServiceInterface,
	projectService ProjectServiceInterface,
	userService UserServiceInterface,
	emailService EmailServiceInterface,
	hub HubInterface,
) *MemberHandler {
	return &MemberHandler{
		memberService:  memberService,
		projectService: projectService,
		userService:    userService,
		emailService:   emailService,
		hub:            hub,
	}
}

func (h *MemberHandler) List(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	members, err := h.memberService.GetProjectMembers(context.Background(), projectID)
	if err != nil {
		c.InternalServerError("failed to get members")
		return
	}

	response := make([]dto.ProjectMemberResponse, len(members))
	for i, member := range members {
		response[i] = dto.ProjectMemberResponse{
			ID:     member.ID,
			UserID: member.UserID,
			Role:   member.Role,
			User: dto.UserResponse{
				ID:        member.User.ID,
				Email:     member.User.Email,
				Name:      member.User.Name,
				AvatarURL: member.User.AvatarURL,
				Provider:  member.User.Provider,
			},
		}
	}

	_ = c.JSON(200, response)
}

func (h *MemberHandler) Invite(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.InviteProjectMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	if req.Email == "" {
		c.BadRequest("email is required")
		return
	}

	ctx := context.Background()

	member, err := h.memberService.Invite(ctx, projectID, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.NotFound(err.Error())
		case errors.Is(err, services.ErrAlreadyProjectMember):
			c.BadRequest(err.Error())
		case errors.Is(err, rbac.ErrInvalidRole):
			c.BadRequest(err.Error())
		default:
			c.InternalServerError("failed to invite member")
		}
		return
	}

	h.hub.BroadcastMemberInvited(projectID, member.UserID, member.Role)
	h.notifyInvitee(ctx, projectID, req.Email, member.Role, middleware.GetUserID(c))

	_ = c.JSON(201, member)
}

func (h *MemberHandler) UpdateRole(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	var req dto.UpdateProjectMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	member, err := h.memberService.UpdateRole(context.Background(), projectID, targetID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, rbac.ErrInvalidRole):
			c.BadRequest(err.Error())
		case errors.Is(err, rbac.ErrMembershipNotFound):
			c.NotFound("membership not found")
		default:
			c.InternalServerError("failed to update role")
		}
		return
	}

	h.hub.BroadcastMemberRoleChanged(projectID, targetID, member.Role)

	_ = c.JSON(200, member)
}

func (h *MemberHandler) Remove(c *drift.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	if err := h.memberService.Remove(context.Background(), projectID, targetID); err != nil {
		c.InternalServerError("failed to remove member")
		return
	}

	h.hub.BroadcastMemberRemoved(projectID, targetID)

	_ = c.JSON(200, map[string]string{"message": "member removed"})
}

// notifyInvitee sends the invitation email on a best-effort basis; a
// failed send never fails the invite.
func (h *MemberHandler) notifyInvitee(ctx context.Context, projectID uuid.UUID, email, role string, inviterID uuid.UUID) {
	project, err := h.projectService.GetByID(ctx, projectID)
	if err != nil {
		return
	}

	inviterName := "A teammate"
	if inviterID != uuid.Nil {
		if inviter, err := h.userService.GetByID(ctx, inviterID); err == nil {
			inviterName = inviter.Name
		}
	}

	_ = h.emailService.SendProjectInvite(email, project.Name, inviterName, role)
}
