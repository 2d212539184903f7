package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/middleware"
	"github.com/hackhub/hackhub-api/internal/models"
	"github.com/hackhub/hackhub-api/internal/services"
	"github.com/hackhub/hackhub-api/pkg/dto"
	"github.com/hackhub/hackhub-api/tests/testutil"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupChatTest(t *testing.T) (*testutil.MockChatService, *testutil.MockProjectService, *testutil.MockHub, *ChatHandler, *services.JWTService) {
	t.Helper()
	mockChatService := new(testutil.MockChatService)
	mockProjectService := new(testutil.MockProjectService)
	mockHub := new(testutil.MockHub)
	handler := NewChatHandler(mockChatService, mockProjectService, mockHub)
	jwtSvc := newTestJWTService()
	return mockChatService, mockProjectService, mockHub, handler, jwtSvc
}

func chatTestApp(handler *ChatHandler, jwtSvc *services.JWTService) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/projects/:projectId/chat/messages", handler.GetHistory)
	app.Get("/projects/:projectId/chat/pinned", handler.GetPinned)
	app.Post("/projects/:projectId/chat/messages/:messageId/pin", handler.PinMessage)
	return app
}

func TestChatHandler_GetHistory_Success(t *testing.T) {
	mockChatService, mockProjectService, _, handler, jwtSvc := setupChatTest(t)

	teamID := uuid.New()
	projectID := uuid.New()
	project := &models.Project{ID: projectID, TeamID: teamID, Name: "Sprint Demo"}
	messages := []models.Message{
		{ID: uuid.New(), TeamID: teamID, ProjectID: &projectID, Content: "first"},
		{ID: uuid.New(), TeamID: teamID, ProjectID: &projectID, Content: "second"},
	}

	mockProjectService.On("GetByID", mock.Anything, projectID).Return(project, nil)
	mockChatService.On("GetRecentMessages", mock.Anything, teamID, &projectID, 0).Return(messages, nil)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/chat/messages", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	chatTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []models.Message
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response, 2)
	assert.Equal(t, "first", response[0].Content)

	mockChatService.AssertExpectations(t)
}

func TestChatHandler_GetHistory_WithLimit(t *testing.T) {
	mockChatService, mockProjectService, _, handler, jwtSvc := setupChatTest(t)

	teamID := uuid.New()
	projectID := uuid.New()
	project := &models.Project{ID: projectID, TeamID: teamID}

	mockProjectService.On("GetByID", mock.Anything, projectID).Return(project, nil)
	mockChatService.On("GetRecentMessages", mock.Anything, teamID, &projectID, 10).Return([]models.Message{}, nil)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/chat/messages?limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	chatTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockChatService.AssertExpectations(t)
}

func TestChatHandler_GetHistory_InvalidLimit(t *testing.T) {
	mockChatService, _, _, handler, jwtSvc := setupChatTest(t)

	projectID := uuid.New()

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/chat/messages?limit=zero", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	chatTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockChatService.AssertNotCalled(t, "GetRecentMessages")
}

func TestChatHandler_GetPinned_Success(t *testing.T) {
	mockChatService, mockProjectService, _, handler, jwtSvc := setupChatTest(t)

	teamID := uuid.New()
	projectID := uuid.New()
	project := &models.Project{ID: projectID, TeamID: teamID}
	pinned := []models.Message{
		{ID: uuid.New(), TeamID: teamID, ProjectID: &projectID, Content: "standup at 10", IsPinned: true},
	}

	mockProjectService.On("GetByID", mock.Anything, projectID).Return(project, nil)
	mockChatService.On("GetPinnedMessages", mock.Anything, teamID, &projectID).Return(pinned, nil)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/chat/pinned", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	chatTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []models.Message
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response, 1)
	assert.True(t, response[0].IsPinned)

	mockChatService.AssertExpectations(t)
}

func TestChatHandler_PinMessage_Success(t *testing.T) {
	mockChatService, _, mockHub, handler, jwtSvc := setupChatTest(t)

	userID := uuid.New()
	projectID := uuid.New()
	messageID := uuid.New()
	message := &models.Message{
		ID:       messageID,
		Content:  "standup at 10",
		IsPinned: true,
	}

	mockChatService.On("PinMessage", mock.Anything, messageID, true).Return(message, nil)
	mockHub.On("BroadcastMessagePinned", projectID, messageID, userID, true).Return()

	body := dto.PinMessageRequest{IsPinned: true}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/chat/messages/"+messageID.String()+"/pin", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	chatTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.Message
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.True(t, response.IsPinned)

	mockChatService.AssertExpectations(t)
	mockHub.AssertExpectations(t)
}

func TestChatHandler_PinMessage_NotFound(t *testing.T) {
	mockChatService, _, mockHub, handler, jwtSvc := setupChatTest(t)

	projectID := uuid.New()
	messageID := uuid.New()

	mockChatService.On("PinMessage", mock.Anything, messageID, false).Return(nil, services.ErrMessageNotFound)

	body := dto.PinMessageRequest{IsPinned: false}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/chat/messages/"+messageID.String()+"/pin", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	chatTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockHub.AssertNotCalled(t, "BroadcastMessagePinned")
}
