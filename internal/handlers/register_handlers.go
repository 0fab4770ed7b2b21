package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/tanmayd/user_platform_app/cmd/docs"
	portssvc "github.com/tanmayd/user_platform_app/internal/core/ports/services"
	"github.com/tanmayd/user_platform_app/internal/middleware"
	"github.com/tanmayd/user_platform_app/internal/platform/config"
)

// RegisterAuthServiceRoutes sets up the auth service's routes.
func RegisterAuthServiceRoutes(r *gin.Engine, cfg *config.Config, authService portssvc.AuthSvcFacade) {
	r.Use(corsMiddleware(cfg))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	h := newAuthHandler(authService)

	// Credential endpoints are abuse targets; rate limit per client IP.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", limitMiddleware, h.signup)
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/forgot-password", limitMiddleware, h.forgotPassword)
		auth.POST("/reset-password/:token", h.resetPassword)
		auth.POST("/verify", h.verify)
	}

	setupSwaggerRoutes(r, cfg)
}

// RegisterBackendServiceRoutes sets up the backend service's routes. Token
// verification is delegated to the injected TokenVerifier.
func RegisterBackendServiceRoutes(r *gin.Engine, cfg *config.Config, userService portssvc.UserSvcFacade, verifier portssvc.TokenVerifier) {
	r.Use(corsMiddleware(cfg))

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	h := newUserHandler(userService)

	users := r.Group("/api/users", middleware.AuthMiddleware(verifier))
	{
		users.GET("/profile", h.getProfile)
		users.PUT("/profile", h.updateProfile)
		users.GET("", h.listUsers)
	}

	setupSwaggerRoutes(r, cfg)
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
