package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medhq/hospital-api/internal/handler"
	"github.com/medhq/hospital-api/pkg/auth"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	validator TokenValidator
}

func NewAuthMiddleware(validator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// Authenticate verifies the bearer token and sets the caller's identity in
// the request context. The caller's identity only gates access; no handler
// distinguishes between staff roles.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handler.Error(c, apperrors.Auth("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			handler.Error(c, apperrors.Auth("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.validator.ValidateToken(parts[1])
		if err != nil {
			handler.Error(c, apperrors.Auth("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}
