package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// TaskService handles task-related operations
type TaskService struct {
	taskRepo  ports.TaskRepository
	groupRepo ports.TaskGroupRepository
	logger    *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, groupRepo ports.TaskGroupRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:  taskRepo,
		groupRepo: groupRepo,
		logger:    logger,
	}
}

// CreateTask creates a new task, appended at the end of its bucket
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return nil, fmt.Errorf("task group not found: %w", err)
		}
	}

	siblings, err := s.taskRepo.ListByOrganizer(ctx, req.OrganizerID, ports.TaskFilter{GroupID: req.GroupID})
	if err != nil {
		return nil, fmt.Errorf("failed to count sibling tasks: %w", err)
	}

	task := &entities.Task{
		ID:           uuid.New(),
		OrganizerID:  req.OrganizerID,
		GroupID:      req.GroupID,
		Title:        req.Title,
		Translations: req.Translations,
		Status:       entities.TaskStatusPending,
		Priority:     req.Priority,
		AssigneeID:   req.AssigneeID,
		Position:     len(siblings),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Infow("task created", "task_id", task.ID, "title", task.Title)
	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}
	return task, nil
}

// ListTasks returns all of the organizer's tasks matching the filter
func (s *TaskService) ListTasks(ctx context.Context, organizerID uuid.UUID, filter ports.TaskFilter) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.ListByOrganizer(ctx, organizerID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies the non-nil fields of the request to the task
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task not found: %w", err)
	}

	if req.GroupID != nil {
		if *req.GroupID != nil {
			if _, err := s.groupRepo.GetByID(ctx, **req.GroupID); err != nil {
				return nil, fmt.Errorf("task group not found: %w", err)
			}
		}
		task.GroupID = *req.GroupID
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Translations != nil {
		task.Translations = req.Translations
	}
	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, entities.ErrInvalidStatus
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = req.Priority
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("task not found: %w", err)
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.logger.Infow("task deleted", "task_id", id)
	return nil
}

// ReorderTasks rewrites the position of every task in one bucket. The
// payload is the full order; the write is last-consistent-write-wins.
func (s *TaskService) ReorderTasks(ctx context.Context, groupID *uuid.UUID, orders []entities.TaskOrder) error {
	if len(orders) == 0 {
		return nil
	}
	if err := s.taskRepo.UpdatePositions(ctx, groupID, orders); err != nil {
		return fmt.Errorf("failed to reorder tasks: %w", err)
	}
	return nil
}
