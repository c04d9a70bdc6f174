package v1

import (
	"net/http"

	"go-talentflow-backend/internal/delivery/http/middleware"
	"go-talentflow-backend/internal/delivery/http/response"
	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/apperror"
	"go-talentflow-backend/pkg/audit"
	"go-talentflow-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(api *gin.RouterGroup, authUC domain.AuthUsecase, authLimit gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	auth := api.Group("/auth")
	{
		auth.POST("/register", authLimit, handler.Register)
		auth.POST("/login", authLimit, handler.Login)
		auth.GET("/me", middleware.RequireAuthenticated(), handler.Me)
	}
}

type RegisterRequest struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=ADMIN RECRUITER CANDIDATE"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the token + profile payload returned by register and login.
type AuthResponse struct {
	Token    string      `json:"token"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	FullName string      `json:"fullName"`
	UserID   int64       `json:"userId"`
}

func newAuthResponse(res *domain.AuthResult) AuthResponse {
	return AuthResponse{
		Token:    res.Token,
		Email:    res.User.Email,
		Role:     res.User.Role,
		FullName: res.User.FullName,
		UserID:   res.User.ID,
	}
}

// Register godoc
// @Summary      Register a new user
// @Description  Allows registration of ADMIN, RECRUITER, or CANDIDATE
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Validation failed", validation.Fields(err)))
		return
	}

	// Binding's oneof already constrained the value.
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	res, err := h.authUC.Register(c.Request.Context(), domain.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		c.Error(err)
		return
	}

	audit.Event(audit.EventRegistered)
	response.Success(c, http.StatusCreated, "User registered successfully", newAuthResponse(res))
}

// Login godoc
// @Summary      Login user
// @Description  Authenticates user and returns JWT token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Validation failed", validation.Fields(err)))
		return
	}

	res, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		audit.LoginFailed(req.Email, c.ClientIP(), "invalid_credentials")
		c.Error(err)
		return
	}

	audit.LoginSuccess(res.User.ID, res.User.Email, c.ClientIP())
	response.Success(c, http.StatusOK, "Login successful", newAuthResponse(res))
}

// Me godoc
// @Summary      Current account
// @Description  Returns the profile of the authenticated account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.GetCurrentUser(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Current user", user)
}
