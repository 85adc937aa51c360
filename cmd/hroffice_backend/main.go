package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hroffice/hroffice_backend/internal/adapters/database/pgsql"
	"github.com/hroffice/hroffice_backend/internal/adapters/storage"
	portssvc "github.com/hroffice/hroffice_backend/internal/core/ports/services"
	"github.com/hroffice/hroffice_backend/internal/core/services"
	"github.com/hroffice/hroffice_backend/internal/handlers"
	"github.com/hroffice/hroffice_backend/internal/middleware"
	"github.com/hroffice/hroffice_backend/pkg/config"
	"github.com/hroffice/hroffice_backend/pkg/database"
)

// @title HR Office Backend API
// @version 1.0
// @description Cash advance liquidation back office.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
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
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		os.Exit(1)
	}

	receiptStore, err := storage.NewLocalFileStorage(cfg.ReceiptStorageDir, cfg.ReceiptBaseURL, []byte(cfg.ReceiptSigningSecret))
	if err != nil {
		logger.Error("Failed to initialize receipt storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services
	userRepo := pgsql.NewPgxUserRepository(dbPool)
	advanceRepo := pgsql.NewPgxCashAdvanceRepository(dbPool)
	liquidationRepo := pgsql.NewPgxLiquidationRepository(dbPool)

	authzService := services.NewAuthzService(userRepo)
	container := &portssvc.ServiceContainer{
		User:        services.NewUserService(userRepo, authzService),
		Authz:       authzService,
		CashAdvance: services.NewCashAdvanceService(advanceRepo, authzService),
		Liquidation: services.NewLiquidationService(liquidationRepo, advanceRepo, authzService, receiptStore),
	}

	if cfg.BootstrapAdminPassword != "" {
		if err := container.User.EnsureBootstrapAdmin(context.Background(), cfg.BootstrapAdminUsername, cfg.BootstrapAdminName, cfg.BootstrapAdminPassword); err != nil {
			logger.Error("Failed to ensure bootstrap admin", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	handlers.RegisterRoutes(r, cfg, container, receiptStore)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations directory.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	// Use a standard sql.DB connection via the pgx stdlib driver for migrate.
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
