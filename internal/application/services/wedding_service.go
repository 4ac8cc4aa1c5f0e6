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

// WeddingService handles wedding management
type WeddingService struct {
	weddingRepo ports.WeddingRepository
	logger      *logger.Logger
}

// NewWeddingService creates a new wedding service
func NewWeddingService(weddingRepo ports.WeddingRepository, logger *logger.Logger) *WeddingService {
	return &WeddingService{
		weddingRepo: weddingRepo,
		logger:      logger,
	}
}

// CreateWedding creates a new wedding for the organizer
func (s *WeddingService) CreateWedding(ctx context.Context, organizerID uuid.UUID, req ports.CreateWeddingRequest) (*entities.Wedding, error) {
	wedding := &entities.Wedding{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Name:        req.Name,
		Date:        req.Date,
		Venue:       req.Venue,
		Status:      entities.WeddingStatusPlanning,
		Budget:      req.Budget,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.weddingRepo.Create(ctx, wedding); err != nil {
		return nil, fmt.Errorf("failed to create wedding: %w", err)
	}

	s.logger.Infow("wedding created", "wedding_id", wedding.ID, "name", wedding.Name)
	return wedding, nil
}

// GetWedding retrieves a wedding by ID
func (s *WeddingService) GetWedding(ctx context.Context, id uuid.UUID) (*entities.Wedding, error) {
	wedding, err := s.weddingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("wedding not found: %w", err)
	}
	return wedding, nil
}

// ListWeddings returns all of the organizer's weddings
func (s *WeddingService) ListWeddings(ctx context.Context, organizerID uuid.UUID) ([]*entities.Wedding, error) {
	weddings, err := s.weddingRepo.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weddings: %w", err)
	}
	return weddings, nil
}

// UpdateWedding applies the non-nil fields of the request
func (s *WeddingService) UpdateWedding(ctx context.Context, id uuid.UUID, req ports.UpdateWeddingRequest) (*entities.Wedding, error) {
	wedding, err := s.weddingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("wedding not found: %w", err)
	}

	if req.Name != nil {
		wedding.Name = *req.Name
	}
	if req.Date != nil {
		wedding.Date = req.Date
	}
	if req.Venue != nil {
		wedding.Venue = req.Venue
	}
	if req.Status != nil {
		wedding.Status = *req.Status
	}
	if req.Budget != nil {
		wedding.Budget = req.Budget
	}
	wedding.UpdatedAt = time.Now()

	if err := s.weddingRepo.Update(ctx, wedding); err != nil {
		return nil, fmt.Errorf("failed to update wedding: %w", err)
	}
	return wedding, nil
}

// DeleteWedding removes a wedding and its dependent records
func (s *WeddingService) DeleteWedding(ctx context.Context, id uuid.UUID) error {
	if _, err := s.weddingRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("wedding not found: %w", err)
	}
	if err := s.weddingRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete wedding: %w", err)
	}
	s.logger.Infow("wedding deleted", "wedding_id", id)
	return nil
}
