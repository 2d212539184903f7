package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/ai"
	"github.com/hackhub/hackhub-api/internal/hub"
	"github.com/hackhub/hackhub-api/internal/models"
	"github.com/hackhub/hackhub-api/internal/oauth"
	"github.com/hackhub/hackhub-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	FindOrCreateByEmail(ctx context.Context, email, name string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// TeamServiceInterface defines the methods used by handlers from TeamService
type TeamServiceInterface interface {
	Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Team, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error)
	IsOwner(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
}

// ProjectServiceInterface defines the methods used by handlers from ProjectService
type ProjectServiceInterface interface {
	Create(ctx context.Context, teamID uuid.UUID, name string, description *string, creatorID uuid.UUID) (*models.Project, error)
	GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	GetTeamProjects(ctx context.Context, teamID uuid.UUID) ([]models.Project, error)
	Update(ctx context.Context, projectID uuid.UUID, params services.UpdateProjectParams) (*models.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

// MemberServiceInterface defines the methods used by handlers from MemberService
type MemberServiceInterface interface {
	GetProjectMembers(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error)
	Invite(ctx context.Context, projectID uuid.UUID, email, role string) (*models.ProjectMember, error)
	UpdateRole(ctx context.Context, projectID, userID uuid.UUID, role string) (*models.ProjectMember, error)
	Remove(ctx context.Context, projectID, userID uuid.UUID) error
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	Create(ctx context.Context, projectID uuid.UUID, params services.CreateTaskParams) (*models.Task, error)
	GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	GetProjectTasks(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, taskID uuid.UUID, params services.UpdateTaskParams) (*models.Task, error)
	Delete(ctx context.Context, taskID uuid.UUID) error
	Burndown(ctx context.Context, projectID uuid.UUID) (*models.Burndown, error)
}

// SnippetServiceInterface defines the methods used by handlers from SnippetService
type SnippetServiceInterface interface {
	Create(ctx context.Context, projectID, userID uuid.UUID, params services.CreateSnippetParams) (*models.Snippet, error)
	GetByID(ctx context.Context, snippetID uuid.UUID) (*models.Snippet, error)
	GetProjectSnippets(ctx context.Context, projectID uuid.UUID) ([]models.Snippet, error)
	Update(ctx context.Context, snippetID uuid.UUID, params services.UpdateSnippetParams) (*models.Snippet, error)
	Delete(ctx context.Context, snippetID uuid.UUID) error
}

// DecisionServiceInterface defines the methods used by handlers from DecisionService
type DecisionServiceInterface interface {
	Create(ctx context.Context, projectID, userID uuid.UUID, params services.CreateDecisionParams) (*models.Decision, error)
	GetByID(ctx context.Context, decisionID uuid.UUID) (*models.Decision, error)
	GetProjectDecisions(ctx context.Context, projectID uuid.UUID) ([]models.Decision, error)
	AddNote(ctx context.Context, decisionID, userID uuid.UUID, content string) (*models.DecisionNote, error)
	GetNotes(ctx context.Context, decisionID uuid.UUID) ([]models.DecisionNote, error)
	Delete(ctx context.Context, decisionID uuid.UUID) error
}

// ChatServiceInterface defines the methods used by handlers from ChatService
type ChatServiceInterface interface {
	SaveMessage(ctx context.Context, teamID uuid.UUID, projectID *uuid.UUID, senderID uuid.UUID, content string) (*models.Message, error)
	GetRecentMessages(ctx context.Context, teamID uuid.UUID, projectID *uuid.UUID, limit int) ([]models.Message, error)
	PinMessage(ctx context.Context, messageID uuid.UUID, pinned bool) (*models.Message, error)
	GetPinnedMessages(ctx context.Context, teamID uuid.UUID, projectID *uuid.UUID) ([]models.Message, error)
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendProjectInvite(to, projectName, inviterName, role string) error
}

// AIClientInterface defines the methods used by handlers from the Gemini client
type AIClientInterface interface {
	Chat(ctx context.Context, projectContext, message string) (string, error)
	GenerateTasks(ctx context.Context, description string) ([]ai.TaskSuggestion, error)
	ExplainSnippet(ctx context.Context, language, code string) (string, error)
	SummarizeProject(ctx context.Context, projectContext string) (string, error)
}

// HubInterface defines the methods used by handlers from the Hub
type HubInterface interface {
	Register(client *hub.Client)
	Unregister(client *hub.Client)
	JoinProject(clientID string, projectID uuid.UUID)
	LeaveProject(clientID string, projectID uuid.UUID)
	BroadcastChatMessage(projectID uuid.UUID, message *models.Message)
	BroadcastMessagePinned(projectID, messageID, pinnedBy uuid.UUID, pinned bool)
	BroadcastTaskCreated(projectID, actorID uuid.UUID, task *models.Task)
	BroadcastTaskUpdated(projectID, actorID uuid.UUID, task *models.Task)
	BroadcastTaskDeleted(projectID, taskID, actorID uuid.UUID)
	BroadcastSnippetCreated(projectID, actorID uuid.UUID, snippet *models.Snippet)
	BroadcastDecisionCreated(projectID, actorID uuid.UUID, decision *models.Decision)
	BroadcastMemberInvited(projectID, userID uuid.UUID, role string)
	BroadcastMemberRoleChanged(projectID, userID uuid.UUID, role string)
	BroadcastMemberRemoved(projectID, userID uuid.UUID)
}
