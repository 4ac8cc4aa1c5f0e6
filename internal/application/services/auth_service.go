package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/config"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// Claims are the JWT claims issued for an organizer session.
type Claims struct {
	OrganizerID string `json:"organizer_id"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles organizer registration and login
type AuthService struct {
	organizerRepo ports.OrganizerRepository
	cfg           config.JWTConfig
	logger        *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(organizerRepo ports.OrganizerRepository, cfg config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		organizerRepo: organizerRepo,
		cfg:           cfg,
		logger:        logger,
	}
}

// Register creates a new organizer account and returns a session token
func (s *AuthService) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	if _, err := s.organizerRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, entities.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	organizer := &entities.Organizer{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Language:     language,
		IsActive:     true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.organizerRepo.Create(ctx, organizer); err != nil {
		return nil, fmt.Errorf("failed to create organizer: %w", err)
	}

	s.logger.Infow("organizer registered", "organizer_id", organizer.ID, "email", organizer.Email)
	return s.issueToken(organizer)
}

// Login authenticates an organizer and returns a session token
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	organizer, err := s.organizerRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, entities.ErrUnauthorized
	}
	if !organizer.IsActive {
		return nil, entities.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(organizer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, entities.ErrUnauthorized
	}

	return s.issueToken(organizer)
}

// ValidateToken parses and verifies a session token
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) issueToken(organizer *entities.Organizer) (*ports.AuthResponse, error) {
	expiresAt := time.Now().Add(s.cfg.ExpiresIn)
	claims := &Claims{
		OrganizerID: organizer.ID.String(),
		Email:       organizer.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   organizer.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &ports.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		Organizer: organizer,
	}, nil
}
