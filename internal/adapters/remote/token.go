package remote

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type tokenClaims struct {
	OrganizerID string `json:"organizer_id"`
	jwt.RegisteredClaims
}

// Identify extracts the organizer identifier embedded in an access
// token. The signature is not checked here; the server verifies it on
// every request, this is only for addressing local state.
func Identify(token string) (uuid.UUID, error) {
	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return uuid.Nil, fmt.Errorf("unreadable token: %w", err)
	}
	organizerID, err := uuid.Parse(claims.OrganizerID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token carries no organizer identity: %w", err)
	}
	return organizerID, nil
}
