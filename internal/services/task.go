package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hackhub/hackhub-api/internal/database"
	"github.com/hackhub/hackhub-api/internal/models"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

type TaskService struct {
	db *database.DB
}

func NewTaskService(db *database.DB) *TaskService {
	return &TaskService{db: db}
}

type CreateTaskParams struct {
	Title       string
	Description *string
	Priority    string
	AssigneeID  *uuid.UUID
}

func (s *TaskService) Create(ctx context.Context, projectID uuid.UUID, params CreateTaskParams) (*models.Task, error) {
	priority := params.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !models.IsValidTaskPriority(priority) {
		return nil, ErrInvalidPriority
	}

	var task models.Task
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, description, status, priority, assignee_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, project_id, title, description, status, priority, assignee_id,
		          blocked_reason, completed_at, created_at, updated_at
	`, projectID, params.Title, params.Description, models.TaskStatusTodo, priority, params.AssigneeID).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.AssigneeID, &task.BlockedReason, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

func (s *TaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, project_id, title, description, status, priority, assignee_id,
		       blocked_reason, completed_at, created_at, updated_at
		FROM tasks WHERE id = $1
	`, taskID).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.AssigneeID, &task.BlockedReason, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) GetProjectTasks(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT t.id, t.project_id, t.title, t.description, t.status, t.priority, t.assignee_id,
		       t.blocked_reason, t.completed_at, t.created_at, t.updated_at,
		       u.id, u.email, u.name, u.avatar_url, u.provider, u.created_at, u.updated_at
		FROM tasks t
		LEFT JOIN users u ON t.assignee_id = u.id
		WHERE t.project_id = $1
		ORDER BY t.created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		var uID *uuid.UUID
		var uEmail, uName, uProvider *string
		var uAvatar *string
		var uCreated, uUpdated *time.Time
		if err := rows.Scan(
			&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status, &task.Priority,
			&task.AssigneeID, &task.BlockedReason, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
			&uID, &uEmail, &uName, &uAvatar, &uProvider, &uCreated, &uUpdated,
		); err != nil {
			return nil, err
		}
		if uID != nil {
			task.Assignee = &models.User{
				ID:        *uID,
				Email:     *uEmail,
				Name:      *uName,
				AvatarURL: uAvatar,
				Provider:  *uProvider,
				CreatedAt: *uCreated,
				UpdatedAt: *uUpdated,
			}
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

type UpdateTaskParams struct {
	Title         *string
	Description   *string
	Status        *string
	Priority      *string
	AssigneeID    *uuid.UUID
	BlockedReason *string
}

// Update applies the non-nil fields on top of the stored task. Moving a
// task to DONE stamps completed_at; moving it out of DONE clears it.
func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, params UpdateTaskParams) (*models.Task, error) {
	task, err := s.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		task.Title = *params.Title
	}
	if params.Description != nil {
		task.Description = params.Description
	}
	if params.Priority != nil {
		if !models.IsValidTaskPriority(*params.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *params.Priority
	}
	if params.AssigneeID != nil {
		task.AssigneeID = params.AssigneeID
	}
	if params.BlockedReason != nil {
		task.BlockedReason = params.BlockedReason
	}
	if params.Status != nil {
		if !models.IsValidTaskStatus(*params.Status) {
			return nil, ErrInvalidStatus
		}
		if *params.Status == models.TaskStatusDone && task.Status != models.TaskStatusDone {
			now := time.Now()
			task.CompletedAt = &now
		}
		if *params.Status != models.TaskStatusDone {
			task.CompletedAt = nil
		}
		task.Status = *params.Status
	}

	err = s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET
			title = $1, description = $2, status = $3, priority = $4,
			assignee_id = $5, blocked_reason = $6, completed_at = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING id, project_id, title, description, status, priority, assignee_id,
		          blocked_reason, completed_at, created_at, updated_at
	`, task.Title, task.Description, task.Status, task.Priority,
		task.AssigneeID, task.BlockedReason, task.CompletedAt, taskID).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.AssigneeID, &task.BlockedReason, &task.CompletedAt, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	return err
}

// Burndown builds the burndown chart and the blocked-task summary for a
// project.
func (s *TaskService) Burndown(ctx context.Context, projectID uuid.UUID) (*models.Burndown, error) {
	var projectCreatedAt time.Time
	err := s.db.Pool.QueryRow(ctx, `SELECT created_at FROM projects WHERE id = $1`, projectID).Scan(&projectCreatedAt)
	if err != nil {
		return nil, err
	}

	tasks, err := s.GetProjectTasks(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return computeBurndown(projectCreatedAt, time.Now(), tasks), nil
}

// computeBurndown buckets the project's lifetime into days. For each day
// the ideal line falls linearly from the total task count to zero, and the
// actual line counts tasks that existed but were not completed by the end
// of that day.
func computeBurndown(projectCreatedAt, now time.Time, tasks []models.Task) *models.Burndown {
	burndown := &models.Burndown{
		ChartData:    []models.BurndownPoint{},
		BlockedTasks: []models.Task{},
	}

	for _, task := range tasks {
		if task.Status == models.TaskStatusBlocked {
			burndown.BlockedTasks = append(burndown.BlockedTasks, task)
		}
	}

	total := len(tasks)
	if total == 0 {
		return burndown
	}

	start := projectCreatedAt.Truncate(24 * time.Hour)
	end := now.Truncate(24 * time.Hour)
	days := int(end.Sub(start).Hours()/24) + 1

	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		endOfDay := day.AddDate(0, 0, 1)

		remaining := 0
		for _, task := range tasks {
			if !task.CreatedAt.Before(endOfDay) {
				continue
			}
			if task.CompletedAt == nil || !task.CompletedAt.Before(endOfDay) {
				remaining++
			}
		}

		ideal := float64(total)
		if days > 1 {
			ideal = float64(total) * float64(days-1-i) / float64(days-1)
		}

		burndown.ChartData = append(burndown.ChartData, models.BurndownPoint{
			Date:   day.Format("2006-01-02"),
			Ideal:  ideal,
			Actual: remaining,
		})
	}

	return burndown
}
