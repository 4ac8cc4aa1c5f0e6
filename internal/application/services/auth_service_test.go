package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddingdesk/core/internal/domain/entities"
	"github.com/weddingdesk/core/internal/infrastructure/config"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

type memOrganizerRepo struct {
	byEmail map[string]*entities.Organizer
}

func newMemOrganizerRepo() *memOrganizerRepo {
	return &memOrganizerRepo{byEmail: make(map[string]*entities.Organizer)}
}

func (r *memOrganizerRepo) Create(ctx context.Context, organizer *entities.Organizer) error {
	r.byEmail[organizer.Email] = organizer
	return nil
}

func (r *memOrganizerRepo) GetByID(ctx context.Context, id uuid.UUID) (*entities.Organizer, error) {
	for _, o := range r.byEmail {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, entities.ErrOrganizerNotFound
}

func (r *memOrganizerRepo) GetByEmail(ctx context.Context, email string) (*entities.Organizer, error) {
	o, ok := r.byEmail[email]
	if !ok {
		return nil, entities.ErrOrganizerNotFound
	}
	return o, nil
}

func (r *memOrganizerRepo) Update(ctx context.Context, organizer *entities.Organizer) error {
	r.byEmail[organizer.Email] = organizer
	return nil
}

func (r *memOrganizerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for email, o := range r.byEmail {
		if o.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return entities.ErrOrganizerNotFound
}

func newAuthService() (*AuthService, *memOrganizerRepo) {
	repo := newMemOrganizerRepo()
	cfg := config.JWTConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: "weddingdesk-test"}
	return NewAuthService(repo, cfg, logger.Nop()), repo
}

func TestRegisterIssuesValidToken(t *testing.T) {
	svc, _ := newAuthService()

	resp, err := svc.Register(context.Background(), ports.RegisterRequest{
		Email:    "planner@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Organizer)
	assert.Equal(t, "en", resp.Organizer.Language)
	assert.True(t, resp.Organizer.IsActive)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Organizer.ID.String(), claims.OrganizerID)
	assert.Equal(t, "planner@example.com", claims.Email)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterRequest{Email: "planner@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, ports.RegisterRequest{Email: "planner@example.com", Password: "other-secret"})
	assert.ErrorIs(t, err, entities.ErrEmailTaken)
}

func TestLoginWithWrongPassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, ports.RegisterRequest{Email: "planner@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, ports.LoginRequest{Email: "planner@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthService()
	_, err := svc.Login(context.Background(), ports.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, repo := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, ports.RegisterRequest{Email: "planner@example.com", Password: "secret123"})
	require.NoError(t, err)

	resp.Organizer.IsActive = false
	require.NoError(t, repo.Update(ctx, resp.Organizer))

	_, err = svc.Login(ctx, ports.LoginRequest{Email: "planner@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, entities.ErrUnauthorized)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, ports.RegisterRequest{Email: "planner@example.com", Password: "secret123"})
	require.NoError(t, err)

	other := NewAuthService(newMemOrganizerRepo(), config.JWTConfig{Secret: "different", ExpiresIn: time.Hour}, logger.Nop())
	_, err = other.ValidateToken(resp.Token)
	assert.Error(t, err)
}
