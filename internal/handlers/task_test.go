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

func setupTaskTest(t *testing.T) (*testutil.MockTaskService, *testutil.MockHub, *TaskHandler, *services.JWTService) {
	t.Helper()
	mockTaskService := new(testutil.MockTaskService)
	mockHub := new(testutil.MockHub)
	handler := NewTaskHandler(mockTaskService, mockHub)
	jwtSvc := newTestJWTService()
	return mockTaskService, mockHub, handler, jwtSvc
}

func taskTestApp(handler *TaskHandler, jwtSvc *services.JWTService) http.Handler {
	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/projects/:projectId/tasks", handler.Create)
	app.Get("/projects/:projectId/tasks", handler.List)
	app.Get("/projects/:projectId/tasks/burndown", handler.Burndown)
	app.Get("/projects/:projectId/tasks/:taskId", handler.Get)
	app.Patch("/projects/:projectId/tasks/:taskId", handler.Update)
	app.Delete("/projects/:projectId/tasks/:taskId", handler.Delete)
	return app
}

func TestTaskHandler_Create_Success(t *testing.T) {
	mockTaskService, mockHub, handler, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	projectID := uuid.New()
	task := &models.Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "Wire up auth",
		Status:    models.TaskStatusTodo,
		Priority:  models.TaskPriorityHigh,
	}

	mockTaskService.On("Create", mock.Anything, projectID, services.CreateTaskParams{
		Title:    "Wire up auth",
		Priority: "HIGH",
	}).Return(task, nil)
	mockHub.On("BroadcastTaskCreated", projectID, userID, task).Return()

	body := dto.CreateTaskRequest{Title: "Wire up auth", Priority: "HIGH"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/tasks", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	taskTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response models.Task
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "Wire up auth", response.Title)

	mockTaskService.AssertExpectations(t)
	mockHub.AssertExpectations(t)
}

func TestTaskHandler_Create_InvalidPriority(t *testing.T) {
	mockTaskService, mockHub, handler, jwtSvc := setupTaskTest(t)

	projectID := uuid.New()

	mockTaskService.On("Create", mock.Anything, projectID, services.CreateTaskParams{
		Title:    "Wire up auth",
		Priority: "URGENT",
	}).Return(nil, services.ErrInvalidPriority)

	body := dto.CreateTaskRequest{Title: "Wire up auth", Priority: "URGENT"}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/tasks", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	taskTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockHub.AssertNotCalled(t, "BroadcastTaskCreated")
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	mockTaskService, _, handler, jwtSvc := setupTaskTest(t)

	projectID := uuid.New()

	body := dto.CreateTaskRequest{}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodPost, "/projects/"+projectID.String()+"/tasks", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	taskTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockTaskService.AssertNotCalled(t, "Create")
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	mockTaskService, _, handler, jwtSvc := setupTaskTest(t)

	projectID := uuid.New()
	taskID := uuid.New()

	mockTaskService.On("GetByID", mock.Anything, taskID).Return(nil, services.ErrTaskNotFound)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/tasks/"+taskID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	taskTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskHandler_Update_StatusChange(t *testing.T) {
	mockTaskService, mockHub, handler, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	projectID := uuid.New()
	taskID := uuid.New()
	status := models.TaskStatusDone
	task := &models.Task{
		ID:        taskID,
		ProjectID: projectID,
		Title:     "Wire up auth",
		Status:    status,
		Priority:  models.TaskPriorityMedium,
	}

	mockTaskService.On("Update", mock.Anything, taskID, services.UpdateTaskParams{
		Status: &status,
	}).Return(task, nil)
	mockHub.On("BroadcastTaskUpdated", projectID, userID, task).Return()

	body := dto.UpdateTaskRequest{Status: &status}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/projects/"+projectID.String()+"/tasks/"+taskID.String(), bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	taskTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.Task
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusDone, response.Status)

	mockTaskService.AssertExpectations(t)
	mockHub.AssertExpectations(t)
}

func TestTaskHandler_Update_InvalidStatus(t *testing.T) {
	mockTaskService, mockHub, handler, jwtSvc := setupTaskTest(t)

	projectID := uuid.New()
	taskID := uuid.New()
	status := "SHIPPED"

	mockTaskService.On("Update", mock.Anything, taskID, services.UpdateTaskParams{
		Status: &status,
	}).Return(nil, services.ErrInvalidStatus)

	body := dto.UpdateTaskRequest{Status: &status}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/projects/"+projectID.String()+"/tasks/"+taskID.String(), bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	taskTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockHub.AssertNotCalled(t, "BroadcastTaskUpdated")
}

func TestTaskHandler_Delete_Success(t *testing.T) {
	mockTaskService, mockHub, handler, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	projectID := uuid.New()
	taskID := uuid.New()

	mockTaskService.On("Delete", mock.Anything, taskID).Return(nil)
	mockHub.On("BroadcastTaskDeleted", projectID, taskID, userID).Return()

	token := generateTestToken(t, jwtSvc, userID, "test@example.com")
	req := httptest.NewRequest(http.MethodDelete, "/projects/"+projectID.String()+"/tasks/"+taskID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	taskTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "task deleted")

	mockTaskService.AssertExpectations(t)
	mockHub.AssertExpectations(t)
}

func TestTaskHandler_Burndown_Success(t *testing.T) {
	mockTaskService, _, handler, jwtSvc := setupTaskTest(t)

	projectID := uuid.New()
	burndown := &models.Burndown{
		ChartData: []models.BurndownPoint{
			{Date: "2026-08-01", Ideal: 4, Actual: 4},
			{Date: "2026-08-02", Ideal: 2, Actual: 3},
			{Date: "2026-08-03", Ideal: 0, Actual: 1},
		},
		BlockedTasks: []models.Task{},
	}

	mockTaskService.On("Burndown", mock.Anything, projectID).Return(burndown, nil)

	token := generateTestToken(t, jwtSvc, uuid.New(), "test@example.com")
	req := httptest.NewRequest(http.MethodGet, "/projects/"+projectID.String()+"/tasks/burndown", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	taskTestApp(handler, jwtSvc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.Burndown
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response.ChartData, 3)

	mockTaskService.AssertExpectations(t)
}
