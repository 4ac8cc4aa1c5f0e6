package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/ports"
)

// TaskRepository implements the task repository interface
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, organizer_id, task_group_id, title, translations, status, priority, assignee_id, position, created_at, updated_at`

// Create inserts a new task
func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	translations, err := marshalTranslations(task.Translations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, organizer_id, task_group_id, title, translations, status, priority, assignee_id, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		task.ID,
		task.OrganizerID,
		task.GroupID,
		task.Title,
		translations,
		task.Status,
		task.Priority,
		task.AssigneeID,
		task.Position,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// Update rewrites a task row
func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	translations, err := marshalTranslations(task.Translations)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET task_group_id = $2, title = $3, translations = $4, status = $5, priority = $6, assignee_id = $7, position = $8, updated_at = $9
		WHERE id = $1
		RETURNING updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		task.ID,
		task.GroupID,
		task.Title,
		translations,
		task.Status,
		task.Priority,
		task.AssigneeID,
		task.Position,
		task.UpdatedAt,
	).Scan(&task.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return entities.ErrTaskNotFound
	}
	return nil
}

// ListByOrganizer returns the organizer's tasks, position-ordered
func (r *TaskRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID, filter ports.TaskFilter) ([]*entities.Task, error) {
	conditions := []string{"organizer_id = $1"}
	args := []interface{}{organizerID}

	if filter.GroupID != nil {
		args = append(args, *filter.GroupID)
		conditions = append(conditions, fmt.Sprintf("task_group_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		conditions = append(conditions, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.AssigneeID != nil {
		args = append(args, *filter.AssigneeID)
		conditions = append(conditions, fmt.Sprintf("assignee_id = $%d", len(args)))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY position, created_at`

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*entities.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdatePositions rewrites the position column for every listed task in
// a single transaction. The caller sends the full order of one bucket.
func (r *TaskRepository) UpdatePositions(ctx context.Context, groupID *uuid.UUID, orders []entities.TaskOrder) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `UPDATE tasks SET position = $2, updated_at = NOW() WHERE id = $1`)
	if err != nil {
		return fmt.Errorf("failed to prepare position update: %w", err)
	}
	defer stmt.Close()

	for _, order := range orders {
		if _, err := stmt.ExecContext(ctx, order.ID, order.Order); err != nil {
			return fmt.Errorf("failed to update task position: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit position updates: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*entities.Task, error) {
	var task entities.Task
	var translations []byte

	err := row.Scan(
		&task.ID,
		&task.OrganizerID,
		&task.GroupID,
		&task.Title,
		&translations,
		&task.Status,
		&task.Priority,
		&task.AssigneeID,
		&task.Position,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(translations) > 0 {
		if err := json.Unmarshal(translations, &task.Translations); err != nil {
			return nil, fmt.Errorf("failed to decode task translations: %w", err)
		}
	}
	return &task, nil
}

func marshalTranslations(translations map[string]string) ([]byte, error) {
	if translations == nil {
		return []byte("{}"), nil
	}
	data, err := json.Marshal(translations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode task translations: %w", err)
	}
	return data, nil
}
