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

// OrganizerRepository implements the organizer repository interface
type OrganizerRepository struct {
	db *sqlx.DB
}

// NewOrganizerRepository creates a new organizer repository
func NewOrganizerRepository(db *sqlx.DB) *OrganizerRepository {
	return &OrganizerRepository{db: db}
}

// Create inserts a new organizer
func (r *OrganizerRepository) Create(ctx context.Context, organizer *entities.Organizer) error {
	query := `
		INSERT INTO organizers (id, email, password_hash, first_name, last_name, language, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		organizer.ID,
		organizer.Email,
		organizer.PasswordHash,
		organizer.FirstName,
		organizer.LastName,
		organizer.Language,
		organizer.IsActive,
		organizer.CreatedAt,
		organizer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create organizer: %w", err)
	}
	return nil
}

// GetByID retrieves an organizer by ID
func (r *OrganizerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Organizer, error) {
	var organizer entities.Organizer
	err := r.db.GetContext(ctx, &organizer,
		`SELECT id, email, password_hash, first_name, last_name, language, is_active, created_at, updated_at, deleted_at
		 FROM organizers WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("failed to get organizer: %w", err)
	}
	return &organizer, nil
}

// GetByEmail retrieves an organizer by email
func (r *OrganizerRepository) GetByEmail(ctx context.Context, email string) (*entities.Organizer, error) {
	var organizer entities.Organizer
	err := r.db.GetContext(ctx, &organizer,
		`SELECT id, email, password_hash, first_name, last_name, language, is_active, created_at, updated_at, deleted_at
		 FROM organizers WHERE email = $1 AND deleted_at IS NULL`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrOrganizerNotFound
		}
		return nil, fmt.Errorf("failed to get organizer: %w", err)
	}
	return &organizer, nil
}

// Update rewrites an organizer row
func (r *OrganizerRepository) Update(ctx context.Context, organizer *entities.Organizer) error {
	query := `
		UPDATE organizers
		SET email = $2, password_hash = $3, first_name = $4, last_name = $5, language = $6, is_active = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query,
		organizer.ID,
		organizer.Email,
		organizer.PasswordHash,
		organizer.FirstName,
		organizer.LastName,
		organizer.Language,
		organizer.IsActive,
		organizer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update organizer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return entities.ErrOrganizerNotFound
	}
	return nil
}

// Delete soft-deletes an organizer
func (r *OrganizerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE organizers SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete organizer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return entities.ErrOrganizerNotFound
	}
	return nil
}

// WeddingRepository implements the wedding repository interface
type WeddingRepository struct {
	db *sqlx.DB
}

// NewWeddingRepository creates a new wedding repository
func NewWeddingRepository(db *sqlx.DB) *WeddingRepository {
	return &WeddingRepository{db: db}
}

// Create inserts a new wedding
func (r *WeddingRepository) Create(ctx context.Context, wedding *entities.Wedding) error {
	query := `
		INSERT INTO weddings (id, organizer_id, name, date, venue, status, budget, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		wedding.ID,
		wedding.OrganizerID,
		wedding.Name,
		wedding.Date,
		wedding.Venue,
		wedding.Status,
		wedding.Budget,
		wedding.CreatedAt,
		wedding.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create wedding: %w", err)
	}
	return nil
}

// GetByID retrieves a wedding by ID
func (r *WeddingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wedding, error) {
	var wedding entities.Wedding
	err := r.db.GetContext(ctx, &wedding,
		`SELECT id, organizer_id, name, date, venue, status, budget, created_at, updated_at
		 FROM weddings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrWeddingNotFound
		}
		return nil, fmt.Errorf("failed to get wedding: %w", err)
	}
	return &wedding, nil
}

// Update rewrites a wedding row
func (r *WeddingRepository) Update(ctx context.Context, wedding *entities.Wedding) error {
	query := `
		UPDATE weddings
		SET name = $2, date = $3, venue = $4, status = $5, budget = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		wedding.ID,
		wedding.Name,
		wedding.Date,
		wedding.Venue,
		wedding.Status,
		wedding.Budget,
		wedding.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update wedding: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return entities.ErrWeddingNotFound
	}
	return nil
}

// Delete removes a wedding; payments cascade via foreign key
func (r *WeddingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM weddings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wedding: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return entities.ErrWeddingNotFound
	}
	return nil
}

// ListByOrganizer returns all weddings for the organizer, soonest first
func (r *WeddingRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*entities.Wedding, error) {
	var weddings []*entities.Wedding
	err := r.db.SelectContext(ctx, &weddings,
		`SELECT id, organizer_id, name, date, venue, status, budget, created_at, updated_at
		 FROM weddings WHERE organizer_id = $1 ORDER BY date NULLS LAST, created_at`, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weddings: %w", err)
	}
	return weddings, nil
}

// PaymentRepository implements the payment repository interface
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	query := `
		INSERT INTO payments (id, wedding_id, label, amount, currency, status, due_date, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.WeddingID,
		payment.Label,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.DueDate,
		payment.PaidAt,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var payment entities.Payment
	err := r.db.GetContext(ctx, &payment,
		`SELECT id, wedding_id, label, amount, currency, status, due_date, paid_at, created_at, updated_at
		 FROM payments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

// Update rewrites a payment row
func (r *PaymentRepository) Update(ctx context.Context, payment *entities.Payment) error {
	query := `
		UPDATE payments
		SET label = $2, amount = $3, currency = $4, status = $5, due_date = $6, paid_at = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.Label,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.DueDate,
		payment.PaidAt,
		payment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return entities.ErrPaymentNotFound
	}
	return nil
}

// Delete removes a payment
func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return entities.ErrPaymentNotFound
	}
	return nil
}

// ListByWedding returns a wedding's payments, due-date ordered
func (r *PaymentRepository) ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]*entities.Payment, error) {
	var payments []*entities.Payment
	err := r.db.SelectContext(ctx, &payments,
		`SELECT id, wedding_id, label, amount, currency, status, due_date, paid_at, created_at, updated_at
		 FROM payments WHERE wedding_id = $1 ORDER BY due_date NULLS LAST, created_at`, weddingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}
