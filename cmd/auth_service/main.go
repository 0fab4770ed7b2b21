package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/tanmayd/user_platform_app/internal/adapters/database/pgsql"
	"github.com/tanmayd/user_platform_app/internal/core/services"
	"github.com/tanmayd/user_platform_app/internal/handlers"
	"github.com/tanmayd/user_platform_app/internal/middleware"
	"github.com/tanmayd/user_platform_app/internal/platform/config"
	"github.com/tanmayd/user_platform_app/pkg/database"
)

// @title Auth Service API
// @version 1.0
// @description Issues and validates session tokens for the user platform.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Initialize structured logger
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

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, "file://migrations")
	if err != nil {
		logger.Error("Migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

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
	mailSender := services.NewLogMailSender(logger)
	authService := services.NewAuthService(userRepo, mailSender, cfg)

	handlers.RegisterAuthServiceRoutes(r, cfg, authService)

	logger.Info("Auth service starting", slog.String("port", cfg.AuthPort))
	if err := r.Run(":" + cfg.AuthPort); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
