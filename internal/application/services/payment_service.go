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

// PaymentService handles wedding payment records
type PaymentService struct {
	paymentRepo ports.PaymentRepository
	weddingRepo ports.WeddingRepository
	logger      *logger.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo ports.PaymentRepository, weddingRepo ports.WeddingRepository, logger *logger.Logger) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		weddingRepo: weddingRepo,
		logger:      logger,
	}
}

// CreatePayment records a payment for a wedding
func (s *PaymentService) CreatePayment(ctx context.Context, req ports.CreatePaymentRequest) (*entities.Payment, error) {
	if _, err := s.weddingRepo.GetByID(ctx, req.WeddingID); err != nil {
		return nil, fmt.Errorf("wedding not found: %w", err)
	}

	payment := &entities.Payment{
		ID:        uuid.New(),
		WeddingID: req.WeddingID,
		Label:     req.Label,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Status:    entities.PaymentStatusPending,
		DueDate:   req.DueDate,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.logger.Infow("payment created", "payment_id", payment.ID, "wedding_id", payment.WeddingID, "amount", payment.Amount)
	return payment, nil
}

// ListPayments returns all payments recorded for a wedding
func (s *PaymentService) ListPayments(ctx context.Context, weddingID uuid.UUID) ([]*entities.Payment, error) {
	payments, err := s.paymentRepo.ListByWedding(ctx, weddingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// UpdatePayment applies the non-nil fields of the request
func (s *PaymentService) UpdatePayment(ctx context.Context, id uuid.UUID, req ports.UpdatePaymentRequest) (*entities.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("payment not found: %w", err)
	}

	if req.Label != nil {
		payment.Label = *req.Label
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.Status != nil {
		payment.Status = *req.Status
	}
	if req.DueDate != nil {
		payment.DueDate = req.DueDate
	}
	if req.PaidAt != nil {
		payment.PaidAt = req.PaidAt
		payment.Status = entities.PaymentStatusPaid
	}
	payment.UpdatedAt = time.Now()

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	return payment, nil
}

// DeletePayment removes a payment record
func (s *PaymentService) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if _, err := s.paymentRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("payment not found: %w", err)
	}
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	s.logger.Infow("payment deleted", "payment_id", id)
	return nil
}
