package middleware

import (
	"strings"

	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/audit"
	"go-talentflow-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// Authenticate extracts and verifies the bearer token, binding a Principal
// into the request context on success.
//
// This middleware never rejects a request. A missing or invalid token just
// leaves the request unauthenticated; the route gate (RequireRole /
// RequireAuthenticated) decides later whether that is acceptable. Public
// routes therefore pass through it unharmed.
func Authenticate(codec *token.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := codec.Verify(tokenString)
		if err != nil {
			audit.TokenRejected(c.ClientIP(), err)
			c.Next()
			return
		}

		accountID, err := claims.AccountID()
		if err != nil {
			audit.TokenRejected(c.ClientIP(), err)
			c.Next()
			return
		}
		role, err := domain.ParseRole(claims.Role)
		if err != nil {
			audit.TokenRejected(c.ClientIP(), err)
			c.Next()
			return
		}

		principal := domain.Principal{
			AccountID: accountID,
			Email:     claims.Email,
			Role:      role,
			Authority: role.Authority(),
		}
		c.Request = c.Request.WithContext(domain.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}
