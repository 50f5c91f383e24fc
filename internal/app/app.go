package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	_ "construtora/docs"
	"construtora/internal/config"
	"construtora/internal/database"
	"construtora/internal/handlers"
	"construtora/internal/logging"
	"construtora/internal/metrics"
	"construtora/internal/middleware"
	"construtora/internal/pdf"
	"construtora/internal/repositories"
	"construtora/internal/routes"
	"construtora/internal/services"
	"construtora/internal/utils"
)

// NewRouter wires repositories, services and handlers on top of db.
func NewRouter(cfg *config.Config, db *sql.DB, m *metrics.Metrics, notifier services.Notifier) *gin.Engine {
	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	projetoRepo := repositories.NewProjetoRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	fileRepo := repositories.NewFileRepository(db)

	// === Services ===
	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	userService := services.NewUserService(userRepo)
	projetoService := services.NewProjetoService(projetoRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, projetoRepo, commentRepo, fileRepo, notifier, m)
	commentService := services.NewCommentService(commentRepo, taskRepo, m)
	fileService := services.NewFileService(fileRepo, taskRepo, projetoRepo)
	reportService := services.NewReportService(taskRepo, projetoRepo, pdf.NewBoardGenerator(cfg.Reports.FontPath))

	// === Gin ===
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logging.RequestID())
	router.Use(logging.Middleware())
	router.Use(m.Middleware())
	router.Use(middleware.CORS())

	return routes.SetupRoutes(router, routes.Handlers{
		Auth:    handlers.NewAuthHandler(userService, tokens),
		User:    handlers.NewUserHandler(userService),
		Projeto: handlers.NewProjetoHandler(projetoService),
		Task:    handlers.NewTaskHandler(taskService),
		Comment: handlers.NewCommentHandler(commentService),
		File:    handlers.NewFileHandler(fileService),
		Report:  handlers.NewReportHandler(reportService),
	}, tokens, m)
}

// NewNotifier builds the assignment notifier from whichever channels are
// configured.
func NewNotifier(cfg *config.Config, m *metrics.Metrics) services.Notifier {
	var channels []services.Channel
	if cfg.Telegram.BotToken != "" {
		tg, err := services.NewTelegramChannel(cfg.Telegram.BotToken)
		if err != nil {
			logging.Logger.Warnf("[app][notify] telegram disabled: %v", err)
		} else {
			channels = append(channels, tg)
		}
	}
	if cfg.Email.Enabled() {
		channels = append(channels, services.NewEmailChannel(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
		))
	}
	if len(channels) == 0 {
		logging.Logger.Info("[app][notify] no notification channel configured")
		return nil
	}
	return services.NewAssignmentNotifier(m, channels...)
}

// Run opens the pool, serves HTTP until ctx is cancelled, then shuts the
// server down and closes the pool.
func Run(ctx context.Context, cfg *config.Config) error {
	logging.Init(cfg.Log)
	gin.SetMode(gin.ReleaseMode)

	// === DB ===
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Logger.Errorf("[app] close db: %v", err)
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	m := metrics.New()
	router := NewRouter(cfg, db, m, NewNotifier(cfg, m))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Infof("[app] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Logger.Info("[app] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
