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

func setupTeamTest(t *testing.T) (*testutil.MockTeamService, *testutil.MockUserService, *TeamHandler, *services.JWTService) {
	t.Helper()
	mockTeamService := new(testutil.MockTeamService)
	mockUserService := new(testutil.MockUserService)
	handler := NewTeamHandler(mockTeamService, mockUserService)
	jwtSvc := newTestJWTService()
	return mockTeamService, mockUserService, handler, jwtSvc
}

func teamTestApp(handler *TeamHandler, jwtSvc *services.JWTService) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/teams", handler.Create)
	app.Get("/teams", handler.List)
	app.Get("/teams/:id", handler.Get)
	app.Get("/teams/:id/members", handler.GetMembers)
	app.Post("/teams/:id/members", handler.AddMember)
	app.Delete("/teams/:id/members/:memberId", handler.RemoveMember)
	return app
}

func TestTeamHandler_Create_Success(t *testing.T) {
	mockTeamService, _, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	team := &models.Team{
		ID:      uuid.New(),
		Name:    "Night Owls",
		OwnerID: userID,
	}

	mockTeamService.On("Create", mock.Anything, "Night Owls", userID).Return(team, nil)

	body := dto.CreateTeamRequest{Name: "Night Owls"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/teams", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	teamTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.TeamResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, team.ID, response.ID)
	assert.Equal(t, "owner", response.Role)

	mockTeamService.AssertExpectations(t)
}

func TestTeamHandler_Create_MissingName(t *testing.T) {
	mockTeamService, _, handler, jwtSvc := setupTeamTest(t)

	body := dto.CreateTeamRequest{}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/teams", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	teamTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockTeamService.AssertNotCalled(t, "Create")
}

func TestTeamHandler_List_Success(t *testing.T) {
	mockTeamService, _, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	teams := []models.Team{
		{ID: uuid.New(), Name: "Night Owls", OwnerID: userID},
		{ID: uuid.New(), Name: "Day Shift", OwnerID: uuid.New()},
	}
	roles := []string{"owner", "member"}

	mockTeamService.On("GetUserTeams", mock.Anything, userID).Return(teams, roles, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	teamTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.TeamResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response, 2)
	assert.Equal(t, "owner", response[0].Role)
	assert.Equal(t, "member", response[1].Role)

	mockTeamService.AssertExpectations(t)
}

func TestTeamHandler_Get_NotAMember(t *testing.T) {
	mockTeamService, _, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	teamID := uuid.New()

	mockTeamService.On("IsMember", mock.Anything, teamID, userID).Return(false, nil)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/teams/"+teamID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	teamTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockTeamService.AssertNotCalled(t, "GetByID")
}

func TestTeamHandler_AddMember_Success(t *testing.T) {
	mockTeamService, mockUserService, handler, jwtSvc := setupTeamTest(t)

	ownerID := uuid.New()
	teamID := uuid.New()
	newUser := &models.User{ID: uuid.New(), Email: "new@example.com", Name: "New User"}

	mockTeamService.On("IsOwner", mock.Anything, teamID, ownerID).Return(true, nil)
	mockUserService.On("GetByEmail", mock.Anything, "new@example.com").Return(newUser, nil)
	mockTeamService.On("AddMember", mock.Anything, teamID, newUser.ID).Return(nil)

	body := dto.AddTeamMemberRequest{Email: "new@example.com"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, ownerID, "owner@example.com")
	req := httptest.NewRequest(http.MethodPost, "/teams/"+teamID.String()+"/members", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	teamTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	mockTeamService.AssertExpectations(t)
	mockUserService.AssertExpectations(t)
}

func TestTeamHandler_AddMember_NotOwner(t *testing.T) {
	mockTeamService, mockUserService, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	teamID := uuid.New()

	mockTeamService.On("IsOwner", mock.Anything, teamID, userID).Return(false, nil)

	body := dto.AddTeamMemberRequest{Email: "new@example.com"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "member@example.com")
	req := httptest.NewRequest(http.MethodPost, "/teams/"+teamID.String()+"/members", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	teamTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockUserService.AssertNotCalled(t, "GetByEmail")
}

func TestTeamHandler_RemoveMember_CannotRemoveOwner(t *testing.T) {
	mockTeamService, _, handler, jwtSvc := setupTeamTest(t)

	ownerID := uuid.New()
	teamID := uuid.New()

	mockTeamService.On("IsOwner", mock.Anything, teamID, ownerID).Return(true, nil)
	mockTeamService.On("RemoveMember", mock.Anything, teamID, ownerID).Return(services.ErrCannotRemoveOwner)

	token := generateTestToken(t, jwtSvc, ownerID, "owner@example.com")
	req := httptest.NewRequest(http.MethodDelete, "/teams/"+teamID.String()+"/members/"+ownerID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	teamTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockTeamService.AssertExpectations(t)
}
