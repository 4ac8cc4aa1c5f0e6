package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/weddingdesk/core/internal/domain/entities"
)

// OrganizerRepository defines the interface for organizer data operations
type OrganizerRepository interface {
	Create(ctx context.Context, organizer *entities.Organizer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Organizer, error)
	GetByEmail(ctx context.Context, email string) (*entities.Organizer, error)
	Update(ctx context.Context, organizer *entities.Organizer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// WeddingRepository defines the interface for wedding data operations
type WeddingRepository interface {
	Create(ctx context.Context, wedding *entities.Wedding) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Wedding, error)
	Update(ctx context.Context, wedding *entities.Wedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*entities.Wedding, error)
}

// TaskGroupRepository defines the interface for task group data operations.
// Delete cascades to the group's tasks via the schema's foreign key.
type TaskGroupRepository interface {
	Create(ctx context.Context, group *entities.TaskGroup) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TaskGroup, error)
	Update(ctx context.Context, group *entities.TaskGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*entities.TaskGroup, error)
	UpdatePositions(ctx context.Context, organizerID uuid.UUID, orders []entities.TaskOrder) error
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID, filter TaskFilter) ([]*entities.Task, error)
	UpdatePositions(ctx context.Context, groupID *uuid.UUID, orders []entities.TaskOrder) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	Update(ctx context.Context, payment *entities.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]*entities.Payment, error)
}

// TaskFilter narrows task listings
type TaskFilter struct {
	GroupID    *uuid.UUID
	Status     *entities.TaskStatus
	Priority   *entities.Priority
	AssigneeID *uuid.UUID
	DueBefore  *time.Time
}
