package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/weddingdesk/core/internal/domain/entities"
)

// BoardDataService is the remote-store contract the board engine runs
// against. Implementations include the HTTP client adapter and the
// server-side service composition used in tests. A non-nil error is the
// sole failure signal; callers roll back on it.
type BoardDataService interface {
	GetGroups(ctx context.Context, organizerID uuid.UUID) ([]*entities.TaskGroup, error)
	GetTasks(ctx context.Context, organizerID uuid.UUID) ([]*entities.Task, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	CreateGroup(ctx context.Context, req CreateTaskGroupRequest) (*entities.TaskGroup, error)
	UpdateGroup(ctx context.Context, id uuid.UUID, req UpdateTaskGroupRequest) (*entities.TaskGroup, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	UpdateTasksOrder(ctx context.Context, containerID *uuid.UUID, orders []entities.TaskOrder) error
	UpdateGroupsOrder(ctx context.Context, organizerID uuid.UUID, orders []entities.TaskOrder) error
}

// ViewStateStore is string-keyed persistence for UI state restoration.
// It is never a source of truth for domain data. A missing key returns
// ErrViewStateKeyNotFound from the implementation package.
type ViewStateStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Auth related types
type RegisterRequest struct {
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Language  string  `json:"language" validate:"omitempty,len=2"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	Organizer *entities.Organizer `json:"organizer"`
}

// Wedding related types
type CreateWeddingRequest struct {
	Name   string     `json:"name" validate:"required,max=200"`
	Date   *time.Time `json:"date"`
	Venue  *string    `json:"venue" validate:"omitempty,max=300"`
	Budget *float64   `json:"budget" validate:"omitempty,gte=0"`
}

type UpdateWeddingRequest struct {
	Name   *string                 `json:"name" validate:"omitempty,max=200"`
	Date   *time.Time              `json:"date"`
	Venue  *string                 `json:"venue" validate:"omitempty,max=300"`
	Status *entities.WeddingStatus `json:"status"`
	Budget *float64                `json:"budget" validate:"omitempty,gte=0"`
}

// Task related types
type CreateTaskRequest struct {
	OrganizerID  uuid.UUID         `json:"organizer_id"`
	GroupID      *uuid.UUID        `json:"task_group_id"`
	Title        string            `json:"title" validate:"required,max=500"`
	Translations map[string]string `json:"translations"`
	Priority     *entities.Priority `json:"priority"`
	AssigneeID   *uuid.UUID        `json:"assignee_id"`
}

// UpdateTaskRequest carries only the fields being changed; nil pointers
// leave the stored value untouched. GroupID uses a double pointer so a
// move to the unsorted bucket (explicit null) is distinguishable from
// "no change".
type UpdateTaskRequest struct {
	GroupID      **uuid.UUID        `json:"-"`
	Title        *string            `json:"title" validate:"omitempty,max=500"`
	Translations map[string]string  `json:"translations"`
	Status       *entities.TaskStatus `json:"status"`
	Priority     *entities.Priority `json:"priority"`
	AssigneeID   *uuid.UUID         `json:"assignee_id"`
}

// Task group related types
type CreateTaskGroupRequest struct {
	OrganizerID uuid.UUID `json:"organizer_id"`
	Name        string    `json:"name" validate:"required,max=200"`
	Color       *string   `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateTaskGroupRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=200"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}

// Payment related types
type CreatePaymentRequest struct {
	WeddingID uuid.UUID  `json:"wedding_id" validate:"required"`
	Label     string     `json:"label" validate:"required,max=200"`
	Amount    float64    `json:"amount" validate:"required,gt=0"`
	Currency  string     `json:"currency" validate:"required,len=3"`
	DueDate   *time.Time `json:"due_date"`
}

type UpdatePaymentRequest struct {
	Label   *string                 `json:"label" validate:"omitempty,max=200"`
	Amount  *float64                `json:"amount" validate:"omitempty,gt=0"`
	Status  *entities.PaymentStatus `json:"status"`
	DueDate *time.Time              `json:"due_date"`
	PaidAt  *time.Time              `json:"paid_at"`
}

type ReorderRequest struct {
	ContainerID *uuid.UUID           `json:"container_id"`
	Orders      []entities.TaskOrder `json:"orders" validate:"required,min=1,dive"`
}
