package middleware

import (
	"net/http"

	"go-talentflow-backend/internal/delivery/http/response"
	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/audit"

	"github.com/gin-gonic/gin"
)

// RequireAuthenticated rejects requests that carry no principal. Used for
// routes any logged-in account may reach.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := domain.PrincipalFromContext(c.Request.Context()); err != nil {
			audit.AccessDenied(audit.EventUnauthorizedAccess, c.Request.Method, c.FullPath(), c.ClientIP(), 0)
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole is the coarse route gate: a request with no principal is
// rejected as unauthenticated, one whose role is outside the allowed set as
// forbidden. Handlers still apply the finer ownership checks afterwards.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		p, err := domain.PrincipalFromContext(c.Request.Context())
		if err != nil {
			audit.AccessDenied(audit.EventUnauthorizedAccess, c.Request.Method, c.FullPath(), c.ClientIP(), 0)
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		if !allowed[p.Role] {
			audit.AccessDenied(audit.EventForbiddenAccess, c.Request.Method, c.FullPath(), c.ClientIP(), p.AccountID)
			response.Error(c, http.StatusForbidden, "Insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
