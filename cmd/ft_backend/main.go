package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SscSPs/finance_tracker_app/internal/adapters/objectstore"
	portsrepo "github.com/SscSPs/finance_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker_app/internal/core/services"
	"github.com/SscSPs/finance_tracker_app/internal/handlers"
	"github.com/SscSPs/finance_tracker_app/internal/middleware"
	"github.com/SscSPs/finance_tracker_app/internal/platform/config"
	"github.com/SscSPs/finance_tracker_app/internal/repositories/database/mongodb"
	"github.com/SscSPs/finance_tracker_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_tracker_app/internal/utils"
	"github.com/SscSPs/finance_tracker_app/pkg/database"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// @title Finance Tracker API
// @version 1.0
// @description Personal finance tracker: transactions with attachments and per-user custom fields.

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeDB, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("driver", cfg.DatabaseDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()

	store, err := objectstore.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize object store", slog.String("driver", cfg.ObjectStoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	serviceContainer := services.NewServiceContainer(cfg, repos, store)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.StructuredLoggingMiddleware(logger),
		middleware.SecurityHeaders(cfg.IsProduction),
		middleware.CORS(cfg.ClientURL),
		middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMax)),
		middleware.PosthogMiddleware(posthogClient),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	logger.Info("Server stopped")
}

// openRepositories connects the configured database and returns its repositories plus a close func.
func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.DBServerSelectionTimeout, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			pool.Close()
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), pool.Close, nil

	default:
		client, err := database.NewMongoClient(ctx, mongodb.ClientOptions(cfg.MongoURI, cfg.DBServerSelectionTimeout), cfg.DBServerSelectionTimeout, logger)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		db := client.Database(cfg.MongoDatabase)

		indexCtx, cancel := context.WithTimeout(ctx, cfg.DBServerSelectionTimeout)
		defer cancel()
		if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
			database.DisconnectMongo(client, cfg.DBServerSelectionTimeout, logger)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("MongoDB indexes ensured", slog.String("database", cfg.MongoDatabase))

		closeFn := func() { database.DisconnectMongo(client, cfg.DBServerSelectionTimeout, logger) }
		return mongodb.NewRepositoryProvider(db), closeFn, nil
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
