package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"construtora/internal/authz"
	"construtora/internal/handlers"
	"construtora/internal/metrics"
	"construtora/internal/middleware"
	"construtora/internal/utils"
)

type Handlers struct {
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Projeto *handlers.ProjetoHandler
	Task    *handlers.TaskHandler
	Comment *handlers.CommentHandler
	File    *handlers.FileHandler
	Report  *handlers.ReportHandler
}

func SetupRoutes(r *gin.Engine, h Handlers, tokens *utils.TokenManager, m *metrics.Metrics) *gin.Engine {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if m != nil {
		r.GET("/metrics", m.Handler())
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// ---- public
	api.POST("/auth/login", h.Auth.Login)
	api.GET("/users", h.User.ListUsers)
	api.GET("/projetos", h.Projeto.List)
	api.GET("/projetos/:id", h.Projeto.GetByID)

	// ---- session optional
	optional := api.Group("", middleware.OptionalAuth(tokens))
	{
		optional.GET("/tasks/:id/comments", h.Comment.List)
	}

	// ---- protected
	auth := api.Group("", middleware.RequireAuth(tokens))
	{
		auth.GET("/auth/me", h.Auth.Me)

		auth.GET("/tasks", h.Task.GetAll)
		auth.POST("/tasks", h.Task.Create)
		auth.GET("/tasks/:id", h.Task.GetByID)
		auth.PUT("/tasks/:id", h.Task.Update)
		auth.DELETE("/tasks/:id", h.Task.Delete)
		auth.POST("/tasks/:id/status", h.Task.ChangeStatus)

		auth.POST("/tasks/:id/comments", h.Comment.Create)
		auth.PUT("/tasks/:id/comments/:commentId", h.Comment.Update)
		auth.DELETE("/tasks/:id/comments/:commentId", h.Comment.Delete)
		auth.POST("/tasks/:id/mark-viewed", h.Comment.MarkViewed)

		auth.GET("/files", h.File.List)
		auth.POST("/files", h.File.Create)

		auth.GET("/reports/tasks.pdf", h.Report.TaskBoard)
	}

	// ---- admin
	admin := auth.Group("", middleware.RequireRoles(authz.RoleAdmin))
	{
		admin.DELETE("/files", h.File.DeleteByQuery)
		admin.PUT("/files/:id", h.File.Update)
		admin.DELETE("/files/:id", h.File.Delete)

		admin.POST("/users", h.User.CreateUser)
		admin.POST("/projetos", h.Projeto.Create)
		admin.DELETE("/projetos/:id", h.Projeto.Delete)
	}

	return r
}
