package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/core/services"
	"github.com/prospel/prospel_backend/internal/dto"
	"github.com/prospel/prospel_backend/internal/handlers"
	"github.com/prospel/prospel_backend/internal/middleware"
	"github.com/prospel/prospel_backend/internal/platform/config"
	"github.com/prospel/prospel_backend/internal/repositories/database/pgsql"
	"github.com/prospel/prospel_backend/internal/scheduler"
	"github.com/prospel/prospel_backend/internal/utils"
	"github.com/prospel/prospel_backend/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "prospel_backend",
	Short: "Finance backend for a Serbian flat-tax sole proprietorship",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the initial admin user",
	RunE:  runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().String("username", "", "admin username")
	createAdminCmd.Flags().String("password", "", "admin password")
	createAdminCmd.Flags().String("full-name", "Administrator", "admin display name")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(serveCmd, createAdminCmd)
}

// @title ProspEl Backend API
// @version 1.0
// @description Finance backend for a Serbian flat-tax sole proprietorship.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServer() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	dto.RegisterCustomValidators()

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos)
	handlers.RegisterRoutes(r, cfg, serviceContainer)

	reminder, err := scheduler.New(cfg.ReminderCronSpec, logger, serviceContainer.Obligation, serviceContainer.PlannedExpense)
	if err != nil {
		return fmt.Errorf("failed to initialize reminder scheduler: %w", err)
	}
	reminder.Start()
	defer reminder.Stop()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server failed to run: %w", err)
	}
	return nil
}

// runMigrations applies pending schema migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		_ = migrationDB.Close()
		return fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		_ = migrationDB.Close()
		return fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		_ = migrationDB.Close()
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// runCreateAdmin bootstraps the first admin account directly through the
// repository. Regular user creation goes through the API and requires an
// existing admin.
func runCreateAdmin(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	password, _ := cmd.Flags().GetString("password")
	fullName, _ := cmd.Flags().GetString("full-name")

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.ClosePgxPool(dbPool)

	if err := runMigrations(slog.Default(), cfg.DatabaseURL); err != nil {
		return err
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	existing, err := repos.UserRepo.FindUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("user %q already exists", username)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	admin := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}
	if err := repos.UserRepo.SaveUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	fmt.Printf("Admin user %q created (%s)\n", username, admin.UserID)
	return nil
}
