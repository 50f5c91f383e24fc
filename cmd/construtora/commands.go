package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"construtora/internal/app"
	"construtora/internal/authz"
	"construtora/internal/database"
	"construtora/internal/logging"
	"construtora/internal/models"
	"construtora/internal/repositories"
	"construtora/internal/services"
)

// serveCmd runs the HTTP API until SIGINT/SIGTERM.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return app.Run(ctx, cfg)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema to the configured database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
		logging.Logger.Info("[migrate] schema applied")
		return nil
	},
}

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

// createAdminCmd bootstraps the first ADMIN account; POST /api/users needs one.
var createAdminCmd = &cobra.Command{
	Use:     "create-admin",
	Short:   "Create a user with the ADMIN role",
	Example: `  construtora create-admin --name "Maria" --email maria@construtora.com.br --password s3cret!`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		return createAdmin(ctx, services.NewUserService(repositories.NewUserRepository(db)))
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminName, "name", "", "display name")
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "login e-mail")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "initial password")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}

func createAdmin(ctx context.Context, users services.UserService) error {
	name := adminName
	if name == "" {
		name = "Administrador"
	}
	u := &models.User{Name: name, Email: adminEmail, Role: authz.RoleAdmin}
	if err := users.CreateUserWithPassword(ctx, u, adminPassword); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			logging.Logger.Warnf("[create-admin] %s already exists", adminEmail)
			return nil
		}
		return err
	}
	logging.Logger.Infof("[create-admin] created user id=%d email=%s", u.ID, u.Email)
	return nil
}
