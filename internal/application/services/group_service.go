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

// TaskGroupService handles task group operations
type TaskGroupService struct {
	groupRepo ports.TaskGroupRepository
	logger    *logger.Logger
}

// NewTaskGroupService creates a new task group service
func NewTaskGroupService(groupRepo ports.TaskGroupRepository, logger *logger.Logger) *TaskGroupService {
	return &TaskGroupService{
		groupRepo: groupRepo,
		logger:    logger,
	}
}

// CreateGroup creates a new task group at the end of the board
func (s *TaskGroupService) CreateGroup(ctx context.Context, req ports.CreateTaskGroupRequest) (*entities.TaskGroup, error) {
	if req.Color != nil {
		if _, err := entities.ParseHexColor(*req.Color); err != nil {
			return nil, err
		}
	}

	existing, err := s.groupRepo.ListByOrganizer(ctx, req.OrganizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task groups: %w", err)
	}

	group := &entities.TaskGroup{
		ID:          uuid.New(),
		OrganizerID: req.OrganizerID,
		Name:        req.Name,
		Color:       req.Color,
		Position:    len(existing),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create task group: %w", err)
	}

	s.logger.Infow("task group created", "group_id", group.ID, "name", group.Name)
	return group, nil
}

// ListGroups returns the organizer's groups in board order
func (s *TaskGroupService) ListGroups(ctx context.Context, organizerID uuid.UUID) ([]*entities.TaskGroup, error) {
	groups, err := s.groupRepo.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task groups: %w", err)
	}
	return groups, nil
}

// UpdateGroup renames or recolors a group
func (s *TaskGroupService) UpdateGroup(ctx context.Context, id uuid.UUID, req ports.UpdateTaskGroupRequest) (*entities.TaskGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("task group not found: %w", err)
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Color != nil {
		if _, err := entities.ParseHexColor(*req.Color); err != nil {
			return nil, err
		}
		group.Color = req.Color
	}
	group.UpdatedAt = time.Now()

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to update task group: %w", err)
	}
	return group, nil
}

// DeleteGroup removes a group; the schema cascades the delete to the
// group's tasks.
func (s *TaskGroupService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if _, err := s.groupRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("task group not found: %w", err)
	}
	if err := s.groupRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task group: %w", err)
	}
	s.logger.Infow("task group deleted", "group_id", id)
	return nil
}

// ReorderGroups rewrites the positions of the organizer's groups in one
// batch.
func (s *TaskGroupService) ReorderGroups(ctx context.Context, organizerID uuid.UUID, orders []entities.TaskOrder) error {
	if len(orders) == 0 {
		return nil
	}
	if err := s.groupRepo.UpdatePositions(ctx, organizerID, orders); err != nil {
		return fmt.Errorf("failed to reorder task groups: %w", err)
	}
	return nil
}
