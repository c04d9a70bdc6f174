package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-talentflow-backend/internal/delivery/http/middleware"
	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newGateRouter(codec *token.Codec) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Authenticate(codec))

	r.GET("/public", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/me", middleware.RequireAuthenticated(), func(c *gin.Context) {
		p, _ := domain.PrincipalFromContext(c.Request.Context())
		c.String(http.StatusOK, p.Email)
	})
	r.GET("/staff", middleware.RequireRole(domain.RoleRecruiter, domain.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticationGate(t *testing.T) {
	codec := token.NewCodec("test-secret", time.Hour)
	r := newGateRouter(codec)

	t.Run("Public route works without a token", func(t *testing.T) {
		w := doGet(r, "/public", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Public route ignores an invalid token", func(t *testing.T) {
		w := doGet(r, "/public", "not-a-jwt")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Protected route rejects a missing token", func(t *testing.T) {
		w := doGet(r, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Authentication required")
	})

	t.Run("Protected route rejects an invalid token", func(t *testing.T) {
		w := doGet(r, "/me", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Protected route rejects a token signed with another secret", func(t *testing.T) {
		other := token.NewCodec("other-secret", time.Hour)
		signed, err := other.Issue(1, "user@test.local", string(domain.RoleCandidate))
		assert.NoError(t, err)

		w := doGet(r, "/me", signed)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Protected route rejects an expired token", func(t *testing.T) {
		expired := token.NewCodec("test-secret", -time.Minute)
		signed, err := expired.Issue(1, "user@test.local", string(domain.RoleCandidate))
		assert.NoError(t, err)

		w := doGet(r, "/me", signed)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Valid token binds the principal", func(t *testing.T) {
		signed, err := codec.Issue(1, "user@test.local", string(domain.RoleCandidate))
		assert.NoError(t, err)

		w := doGet(r, "/me", signed)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user@test.local", w.Body.String())
	})
}

func TestRoleGate(t *testing.T) {
	codec := token.NewCodec("test-secret", time.Hour)
	r := newGateRouter(codec)

	t.Run("Unauthenticated request is 401, not 403", func(t *testing.T) {
		w := doGet(r, "/staff", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Candidate is forbidden on a staff route", func(t *testing.T) {
		signed, _ := codec.Issue(5, "candidate@test.local", string(domain.RoleCandidate))
		w := doGet(r, "/staff", signed)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "Insufficient permissions")
	})

	t.Run("Recruiter passes the staff gate", func(t *testing.T) {
		signed, _ := codec.Issue(3, "recruiter@test.local", string(domain.RoleRecruiter))
		w := doGet(r, "/staff", signed)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Admin passes the staff gate", func(t *testing.T) {
		signed, _ := codec.Issue(42, "admin@test.local", string(domain.RoleAdmin))
		w := doGet(r, "/staff", signed)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Token with an unknown role stays unauthenticated", func(t *testing.T) {
		signed, _ := codec.Issue(9, "odd@test.local", "SUPERUSER")
		w := doGet(r, "/staff", signed)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
