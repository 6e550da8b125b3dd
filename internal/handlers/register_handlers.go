package handlers

import (
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker_app/cmd/docs"
	portssvc "github.com/SscSPs/finance_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", getHealth)

	api := r.Group("/api")

	// Public authentication routes, login gets its own stricter limiter
	loginLimiter := middleware.GinMiddlewarize(middleware.NewIPRateLimiter(time.Minute, 5))
	RegisterAuthRoutes(api, services.Auth, loginLimiter)

	setupProtectedRoutes(api, cfg, services)

	if cfg.ObjectStoreDriver == config.ObjectStoreLocal && strings.HasPrefix(cfg.LocalUploadBaseURL, "/") {
		r.Static(cfg.LocalUploadBaseURL, cfg.LocalUploadDir)
	}

	setupSwaggerRoutes(r, cfg)

	r.NoRoute(notFound)
}

// setupProtectedRoutes applies the auth gate and delegates to the entity route registrations
func setupProtectedRoutes(api *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	protected := api.Group("", middleware.AuthMiddleware(services.Token, services.User))

	RegisterSchemaRoutes(protected, services.Schema)
	RegisterTransactionRoutes(protected, services.Transaction, services.Statement, middleware.UploadOptions{
		FieldName:    "attachments",
		MaxFiles:     cfg.UploadMaxFiles,
		MaxFileSize:  cfg.UploadMaxFileSize,
		AllowedTypes: cfg.UploadAllowedMIMEType,
	})
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
