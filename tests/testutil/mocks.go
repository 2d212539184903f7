package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/ai"
	"github.com/hackhub/hackhub-api/internal/hub"
	"github.com/hackhub/hackhub-api/internal/models"
	"github.com/hackhub/hackhub-api/internal/oauth"
	"github.com/hackhub/hackhub-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateByEmail(ctx context.Context, email, name string) (*models.User, error) {
	args := m.Called(ctx, email, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error) {
	args := m.Called(userID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockTeamService mocks the TeamService
type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, name, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamService) GetUserTeams(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Team), args.Get(1).([]string), args.Error(2)
}

func (m *MockTeamService) IsOwner(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamService) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamService) GetMembers(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]models.TeamMember), args.Error(1)
}

func (m *MockTeamService) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockTeamService) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

// MockProjectService mocks the ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, teamID uuid.UUID, name string, description *string, creatorID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, teamID, name, description, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) GetTeamProjects(ctx context.Context, teamID uuid.UUID) ([]models.Project, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, projectID uuid.UUID, params services.UpdateProjectParams) (*models.Project, error) {
	args := m.Called(ctx, projectID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

// MockMemberService mocks the MemberService
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) GetProjectMembers(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]models.ProjectMember), args.Error(1)
}

func (m *MockMemberService) Invite(ctx context.Context, projectID uuid.UUID, email, role string) (*models.ProjectMember, error) {
	args := m.Called(ctx, projectID, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectMember), args.Error(1)
}

func (m *MockMemberService) UpdateRole(ctx context.Context, projectID, userID uuid.UUID, role string) (*models.ProjectMember, error) {
	args := m.Called(ctx, projectID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectMember), args.Error(1)
}

func (m *MockMemberService) Remove(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

// MockTaskService mocks the TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, projectID uuid.UUID, params services.CreateTaskParams) (*models.Task, error) {
	args := m.Called(ctx, projectID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) GetProjectTasks(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, taskID uuid.UUID, params services.UpdateTaskParams) (*models.Task, error) {
	args := m.Called(ctx, taskID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskService) Burndown(ctx context.Context, projectID uuid.UUID) (*models.Burndown, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Burndown), args.Error(1)
}

// MockSnippetService mocks the SnippetService
type MockSnippetService struct {
	mock.Mock
}

func (m *MockSnippetService) Create(ctx context.Context, projectID, userID uuid.UUID, params services.CreateSnippetParams) (*models.Snippet, error) {
	args := m.Called(ctx, projectID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snippet), args.Error(1)
}

func (m *MockSnippetService) GetByID(ctx context.Context, snippetID uuid.UUID) (*models.Snippet, error) {
	args := m.Called(ctx, snippetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snippet), args.Error(1)
}

func (m *MockSnippetService) GetProjectSnippets(ctx context.Context, projectID uuid.UUID) ([]models.Snippet, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]models.Snippet), args.Error(1)
}

func (m *MockSnippetService) Update(ctx context.Context, snippetID uuid.UUID, params services.UpdateSnippetParams) (*models.Snippet, error) {
	args := m.Called(ctx, snippetID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Snippet), args.Error(1)
}

func (m *MockSnippetService) Delete(ctx context.Context, snippetID uuid.UUID) error {
	args := m.Called(ctx, snippetID)
	return args.Error(0)
}

// MockDecisionService mocks the DecisionService
type MockDecisionService struct {
	mock.Mock
}

func (m *MockDecisionService) Create(ctx context.Context, projectID, userID uuid.UUID, params services.CreateDecisionParams) (*models.Decision, error) {
	args := m.Called(ctx, projectID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Decision), args.Error(1)
}

func (m *MockDecisionService) GetByID(ctx context.Context, decisionID uuid.UUID) (*models.Decision, error) {
	args := m.Called(ctx, decisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Decision), args.Error(1)
}

func (m *MockDecisionService) GetProjectDecisions(ctx context.Context, projectID uuid.UUID) ([]models.Decision, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]models.Decision), args.Error(1)
}

func (m *MockDecisionService) AddNote(ctx context.Context, decisionID, userID uuid.UUID, content string) (*models.DecisionNote, error) {
	args := m.Called(ctx, decisionID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DecisionNote), args.Error(1)
}

func (m *MockDecisionService) GetNotes(ctx context.Context, decisionID uuid.UUID) ([]models.DecisionNote, error) {
	args := m.Called(ctx, decisionID)
	return args.Get(0).([]models.DecisionNote), args.Error(1)
}

func (m *MockDecisionService) Delete(ctx context.Context, decisionID uuid.UUID) error {
	args := m.Called(ctx, decisionID)
	return args.Error(0)
}

// MockChatService mocks the ChatService
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) SaveMessage(ctx context.Context, teamID uuid.UUID, projectID *uuid.UUID, senderID uuid.UUID, content string) (*models.Message, error) {
	args := m.Called(ctx, teamID, projectID, senderID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockChatService) GetRecentMessages(ctx context.Context, teamID uuid.UUID, projectID *uuid.UUID, limit int) ([]models.Message, error) {
	args := m.Called(ctx, teamID, projectID, limit)
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockChatService) PinMessage(ctx context.Context, messageID uuid.UUID, pinned bool) (*models.Message, error) {
	args := m.Called(ctx, messageID, pinned)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockChatService) GetPinnedMessages(ctx context.Context, teamID uuid.UUID, projectID *uuid.UUID) ([]models.Message, error) {
	args := m.Called(ctx, teamID, projectID)
	return args.Get(0).([]models.Message), args.Error(1)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendProjectInvite(to, projectName, inviterName, role string) error {
	args := m.Called(to, projectName, inviterName, role)
	return args.Error(0)
}

// MockAIClient mocks the Gemini client
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) Chat(ctx context.Context, projectContext, message string) (string, error) {
	args := m.Called(ctx, projectContext, message)
	return args.String(0), args.Error(1)
}

func (m *MockAIClient) GenerateTasks(ctx context.Context, description string) ([]ai.TaskSuggestion, error) {
	args := m.Called(ctx, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ai.TaskSuggestion), args.Error(1)
}

func (m *MockAIClient) ExplainSnippet(ctx context.Context, language, code string) (string, error) {
	args := m.Called(ctx, language, code)
	return args.String(0), args.Error(1)
}

func (m *MockAIClient) SummarizeProject(ctx context.Context, projectContext string) (string, error) {
	args := m.Called(ctx, projectContext)
	return args.String(0), args.Error(1)
}

// MockHub mocks the event hub
type MockHub struct {
	mock.Mock
}

func (m *MockHub) Register(client *hub.Client)   { m.Called(client) }
func (m *MockHub) Unregister(client *hub.Client) { m.Called(client) }

func (m *MockHub) JoinProject(clientID string, projectID uuid.UUID)  { m.Called(clientID, projectID) }
func (m *MockHub) LeaveProject(clientID string, projectID uuid.UUID) { m.Called(clientID, projectID) }

func (m *MockHub) BroadcastChatMessage(projectID uuid.UUID, message *models.Message) {
	m.Called(projectID, message)
}

func (m *MockHub) BroadcastMessagePinned(projectID, messageID, pinnedBy uuid.UUID, pinned bool) {
	m.Called(projectID, messageID, pinnedBy, pinned)
}

func (m *MockHub) BroadcastTaskCreated(projectID, actorID uuid.UUID, task *models.Task) {
	m.Called(projectID, actorID, task)
}

func (m *MockHub) BroadcastTaskUpdated(projectID, actorID uuid.UUID, task *models.Task) {
	m.Called(projectID, actorID, task)
}

func (m *MockHub) BroadcastTaskDeleted(projectID, taskID, actorID uuid.UUID) {
	m.Called(projectID, taskID, actorID)
}

func (m *MockHub) BroadcastSnippetCreated(projectID, actorID uuid.UUID, snippet *models.Snippet) {
	m.Called(projectID, actorID, snippet)
}

func (m *MockHub) BroadcastDecisionCreated(projectID, actorID uuid.UUID, decision *models.Decision) {
	m.Called(projectID, actorID, decision)
}

func (m *MockHub) BroadcastMemberInvited(projectID, userID uuid.UUID, role string) {
	m.Called(projectID, userID, role)
}

func (m *MockHub) BroadcastMemberRoleChanged(projectID, userID uuid.UUID, role string) {
	m.Called(projectID, userID, role)
}

func (m *MockHub) BroadcastMemberRemoved(projectID, userID uuid.UUID) {
	m.Called(projectID, userID)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}
