package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/weddingdesk/core/internal/application/services"
)

// authMiddleware validates JWT tokens and injects the organizer identity
// into the request context.
func (s *Server) authMiddleware(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "missing authorization header"})
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid authorization header"})
			}

			claims, err := authService.ValidateToken(parts[1])
			if err != nil {
				s.logger.Debugw("token validation failed", "error", err)
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "invalid or expired token"})
			}

			c.Set("organizer_id", claims.OrganizerID)
			c.Set("organizer_email", claims.Email)

			return next(c)
		}
	}
}
