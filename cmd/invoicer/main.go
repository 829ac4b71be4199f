package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/subhoajk39-commits/invvvoice/internal/adapters/spreadsheet"
	"github.com/subhoajk39-commits/invvvoice/internal/adapters/storage"
	"github.com/subhoajk39-commits/invvvoice/internal/adapters/templates"
	portsrepo "github.com/subhoajk39-commits/invvvoice/internal/core/ports/repositories"
	"github.com/subhoajk39-commits/invvvoice/internal/core/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
	"github.com/subhoajk39-commits/invvvoice/internal/handlers"
	"github.com/subhoajk39-commits/invvvoice/internal/middleware"
	"github.com/subhoajk39-commits/invvvoice/internal/platform/config"
	"github.com/subhoajk39-commits/invvvoice/internal/repositories/database/pgsql"
	"github.com/subhoajk39-commits/invvvoice/internal/repositories/memory"
	"github.com/subhoajk39-commits/invvvoice/internal/utils/amountwords"
	"github.com/subhoajk39-commits/invvvoice/pkg/database"
	"github.com/subhoajk39-commits/invvvoice/pkg/logging"
)

// @title Invoicer API
// @version 1.0
// @description Work tracking and invoice generation.

// @host localhost:8080
// @BasePath /

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
	logger := logging.Setup(os.Stdout, cfg.LogLevel, cfg.IsProduction)

	if err := dto.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open store", slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	artifacts, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Error("Failed to initialize artifact storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if s3Store, ok := artifacts.(*storage.S3Store); ok {
		if err := s3Store.EnsureBucket(ctx); err != nil {
			logger.Error("Failed to prepare artifact bucket", slog.String("bucket", s3Store.Bucket()), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	svc := services.NewServiceContainer(cfg, repos, services.InvoiceCollaborators{
		Templates: templates.NewFileSystemProvider(cfg.Invoice.TemplateDir, templates.WithFallback(spreadsheet.DefaultTemplate)),
		Renderer:  spreadsheet.NewRenderer(cfg.Invoice.Location),
		Words:     amountwords.New(),
		Artifacts: artifacts,
	})

	if cfg.Bootstrap.Email != "" {
		_, created, err := svc.Principal.EnsureSuperAdmin(ctx, cfg.Bootstrap.Username, cfg.Bootstrap.Email, cfg.Bootstrap.Password)
		if err != nil {
			logger.Error("Failed to bootstrap super admin", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if created {
			logger.Info("Super admin created", slog.String("email", cfg.Bootstrap.Email))
		}
	}

	limiters, closeRedis, err := buildLimiters(cfg)
	if err != nil {
		logger.Error("Failed to configure rate limiting", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRedis()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svc, limiters)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// openStore builds the repositories for the configured driver and returns a cleanup func.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		logger.Warn("Using in-memory store; data is lost on restart")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// runMigrations applies all pending up migrations from ./migrations.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
		return errors.Join(sourceErr, dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildLimiters shares counters through redis when REDIS_URL is set.
func buildLimiters(cfg *config.Config) (handlers.Limiters, func(), error) {
	var client *redis.Client
	closeClient := func() {}
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return handlers.Limiters{}, nil, err
		}
		client = redis.NewClient(opts)
		closeClient = func() { _ = client.Close() }
	}

	var limiters handlers.Limiters
	var err error
	if cfg.Limits.Login != "" {
		if limiters.Login, err = middleware.NewLimiter(cfg.Limits.Login, "login", client); err != nil {
			closeClient()
			return handlers.Limiters{}, nil, err
		}
	}
	if cfg.Limits.API != "" {
		if limiters.API, err = middleware.NewLimiter(cfg.Limits.API, "api", client); err != nil {
			closeClient()
			return handlers.Limiters{}, nil, err
		}
	}
	return limiters, closeClient, nil
}
