package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/weddingdesk/core/internal/domain/entities"
)

// TaskGroupRepository implements the task group repository interface
type TaskGroupRepository struct {
	db *sqlx.DB
}

// NewTaskGroupRepository creates a new task group repository
func NewTaskGroupRepository(db *sqlx.DB) *TaskGroupRepository {
	return &TaskGroupRepository{db: db}
}

// Create inserts a new task group
func (r *TaskGroupRepository) Create(ctx context.Context, group *entities.TaskGroup) error {
	query := `
		INSERT INTO task_groups (id, organizer_id, name, color, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		group.ID,
		group.OrganizerID,
		group.Name,
		group.Color,
		group.Position,
		group.CreatedAt,
		group.UpdatedAt,
	).Scan(&group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task group: %w", err)
	}
	return nil
}

// GetByID retrieves a task group by ID
func (r *TaskGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.TaskGroup, error) {
	var group entities.TaskGroup
	err := r.db.GetContext(ctx, &group,
		`SELECT id, organizer_id, name, color, position, created_at, updated_at FROM task_groups WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskGroupNotFound
		}
		return nil, fmt.Errorf("failed to get task group: %w", err)
	}
	return &group, nil
}

// Update rewrites a task group row
func (r *TaskGroupRepository) Update(ctx context.Context, group *entities.TaskGroup) error {
	query := `
		UPDATE task_groups
		SET name = $2, color = $3, position = $4, updated_at = $5
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		group.ID,
		group.Name,
		group.Color,
		group.Position,
		group.UpdatedAt,
	).Scan(&group.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskGroupNotFound
		}
		return fmt.Errorf("failed to update task group: %w", err)
	}
	return nil
}

// Delete removes a task group; the tasks foreign key cascades, deleting
// the group's tasks with it.
func (r *TaskGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM task_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task group: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return entities.ErrTaskGroupNotFound
	}
	return nil
}

// ListByOrganizer returns the organizer's groups in board order
func (r *TaskGroupRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*entities.TaskGroup, error) {
	var groups []*entities.TaskGroup
	err := r.db.SelectContext(ctx, &groups,
		`SELECT id, organizer_id, name, color, position, created_at, updated_at
		 FROM task_groups WHERE organizer_id = $1 ORDER BY position, created_at`, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task groups: %w", err)
	}
	return groups, nil
}

// UpdatePositions rewrites the position of every listed group in one
// transaction.
func (r *TaskGroupRepository) UpdatePositions(ctx context.Context, organizerID uuid.UUID, orders []entities.TaskOrder) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE task_groups SET position = $3, updated_at = NOW() WHERE id = $1 AND organizer_id = $2`)
	if err != nil {
		return fmt.Errorf("failed to prepare position update: %w", err)
	}
	defer stmt.Close()

	for _, order := range orders {
		if _, err := stmt.ExecContext(ctx, order.ID, organizerID, order.Order); err != nil {
			return fmt.Errorf("failed to update group position: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit position updates: %w", err)
	}
	return nil
}
