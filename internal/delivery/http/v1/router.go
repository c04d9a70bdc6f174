package v1

import (
	"net/http"
	"time"

	"go-talentflow-backend/config"
	"go-talentflow-backend/internal/delivery/http/middleware"
	"go-talentflow-backend/internal/delivery/http/response"
	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/pkg/token"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	Codec         *token.Codec
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.Environment)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.ErrorHandler())
	// Authenticate never rejects; routes decide what a missing principal means.
	r.Use(middleware.Authenticate(deps.Codec))
	r.Use(middleware.RateLimit(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Login and registration carry a tighter per-client limit.
	authLimit := middleware.RateLimit(middleware.AuthRateLimitConfig(deps.Config.RateLimitAuthThreshold, window))

	NewAuthHandler(api, deps.AuthUC, authLimit)
	NewJobHandler(api, deps.JobUC)
	NewApplicationHandler(api, deps.ApplicationUC)

	r.NoRoute(func(c *gin.Context) {
		if _, err := domain.PrincipalFromContext(c.Request.Context()); err != nil {
			response.Error(c, http.StatusUnauthorized, "Authentication required", nil)
			return
		}
		response.Error(c, http.StatusNotFound, "Resource not found", nil)
	})

	return r
}
