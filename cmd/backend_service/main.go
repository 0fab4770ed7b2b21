package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tanmayd/user_platform_app/internal/adapters/authclient"
	"github.com/tanmayd/user_platform_app/internal/adapters/database/pgsql"
	"github.com/tanmayd/user_platform_app/internal/core/services"
	"github.com/tanmayd/user_platform_app/internal/handlers"
	"github.com/tanmayd/user_platform_app/internal/middleware"
	"github.com/tanmayd/user_platform_app/internal/platform/config"
	"github.com/tanmayd/user_platform_app/pkg/database"
)

// @title Backend Service API
// @version 1.0
// @description Serves authenticated user profile reads and updates. Token
// validation is delegated to the auth service.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	userRepo := pgsql.NewUserRepository(dbPool)
	userService := services.NewUserService(userRepo)
	verifier := authclient.NewClient(cfg.AuthServiceURL)

	handlers.RegisterBackendServiceRoutes(r, cfg, userService, verifier)

	logger.Info("Backend service starting", slog.String("port", cfg.BackendPort), slog.String("auth_service_url", cfg.AuthServiceURL))
	if err := r.Run(":" + cfg.BackendPort); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
