package entities

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskGroupNotFound = errors.New("task group not found")
	ErrWeddingNotFound   = errors.New("wedding not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrOrganizerNotFound = errors.New("organizer not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidColor      = errors.New("invalid color value")
)

// Enums and types
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether the status is one of the known task states.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type WeddingStatus string

const (
	WeddingStatusPlanning  WeddingStatus = "planning"
	WeddingStatusConfirmed WeddingStatus = "confirmed"
	WeddingStatusCompleted WeddingStatus = "completed"
	WeddingStatusCancelled WeddingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusOverdue  PaymentStatus = "overdue"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Organizer represents a wedding organizer account
type Organizer struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    *string    `json:"first_name" db:"first_name"`
	LastName     *string    `json:"last_name" db:"last_name"`
	Language     string     `json:"language" db:"language"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" db:"deleted_at"`
}

// Wedding represents a wedding managed by an organizer
type Wedding struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	OrganizerID uuid.UUID     `json:"organizer_id" db:"organizer_id"`
	Name        string        `json:"name" db:"name"`
	Date        *time.Time    `json:"date" db:"date"`
	Venue       *string       `json:"venue" db:"venue"`
	Status      WeddingStatus `json:"status" db:"status"`
	Budget      *float64      `json:"budget" db:"budget"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// TaskGroup represents a named column on the organizer's task board.
// Group names are not required to be unique; deleting a group cascades
// to its tasks at the storage layer.
type TaskGroup struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OrganizerID uuid.UUID `json:"organizer_id" db:"organizer_id"`
	Name        string    `json:"name" db:"name"`
	Color       *string   `json:"color" db:"color"`
	Position    int       `json:"position" db:"position"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Task represents a single board item. A nil GroupID means the task is
// unsorted; group membership is a foreign key, not containment.
type Task struct {
	ID           uuid.UUID         `json:"id" db:"id"`
	OrganizerID  uuid.UUID         `json:"organizer_id" db:"organizer_id"`
	GroupID      *uuid.UUID        `json:"task_group_id" db:"task_group_id"`
	Title        string            `json:"title" db:"title"`
	Translations map[string]string `json:"translations,omitempty" db:"-"`
	Status       TaskStatus        `json:"status" db:"status"`
	Priority     *Priority         `json:"priority" db:"priority"`
	AssigneeID   *uuid.UUID        `json:"assignee_id" db:"assignee_id"`
	Position     int               `json:"position" db:"position"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// DisplayTitle resolves the task title for the given language. Precedence:
// the requested language variant, then the generic title, then any other
// variant in deterministic key order.
func (t *Task) DisplayTitle(lang string) string {
	if v, ok := t.Translations[lang]; ok && v != "" {
		return v
	}
	if t.Title != "" {
		return t.Title
	}
	keys := make([]string, 0, len(t.Translations))
	for k := range t.Translations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if t.Translations[k] != "" {
			return t.Translations[k]
		}
	}
	return ""
}

// IsCompleted reports whether the task has been completed.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskStatusCompleted
}

// Payment represents money owed or received for a wedding
type Payment struct {
	ID        uuid.UUID     `json:"id" db:"id"`
	WeddingID uuid.UUID     `json:"wedding_id" db:"wedding_id"`
	Label     string        `json:"label" db:"label"`
	Amount    float64       `json:"amount" db:"amount"`
	Currency  string        `json:"currency" db:"currency"`
	Status    PaymentStatus `json:"status" db:"status"`
	DueDate   *time.Time    `json:"due_date" db:"due_date"`
	PaidAt    *time.Time    `json:"paid_at" db:"paid_at"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

// TaskOrder is one element of a batched reorder payload: the task (or
// group) identifier and its new zero-based position.
type TaskOrder struct {
	ID    uuid.UUID `json:"id"`
	Order int       `json:"order"`
}
