package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-talentflow-backend/config"
	_ "go-talentflow-backend/docs" // Important for Swagger
	v1 "go-talentflow-backend/internal/delivery/http/v1"
	"go-talentflow-backend/internal/repository/postgres"
	"go-talentflow-backend/internal/usecase"
	"go-talentflow-backend/pkg/audit"
	"go-talentflow-backend/pkg/database"
	"go-talentflow-backend/pkg/logger"
	"go-talentflow-backend/pkg/redis"
	"go-talentflow-backend/pkg/token"
)

// @title           TalentFlow Backend API
// @version         1.0
// @description     Job board backend with JWT auth and role-based access.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Environment)
	audit.Init("talentflow-backend", cfg.Environment)
	logger.Log.Info("Starting talentflow backend", "port", cfg.Port, "env", cfg.Environment)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting falls back to memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 6. Setup Token Codec
	codec := token.NewCodec(cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)

	// 7. Setup UseCases
	authUC := usecase.NewAuthUsecase(userRepo, codec)
	jobUC := usecase.NewJobUsecase(jobRepo, userRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, userRepo)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		Codec:         codec,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
