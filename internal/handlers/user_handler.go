package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"construtora/internal/logging"
	"construtora/internal/models"
	"construtora/internal/services"
)

type UserHandler struct {
	service services.UserService
}

type createUserRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Role           string `json:"role"`
	TelegramChatID *int64 `json:"telegramChatId"`
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GET /api/users (public, feeds the assignee pickers)
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListRefs(c.Request.Context())
	if err != nil {
		respondError(c, "[user][list]", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// POST /api/users (admin)
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[user][create]", err)
		return
	}
	user := &models.User{
		Name:           req.Name,
		Email:          req.Email,
		Role:           req.Role,
		TelegramChatID: req.TelegramChatID,
	}
	if err := h.service.CreateUserWithPassword(c.Request.Context(), user, req.Password); err != nil {
		respondError(c, "[user][create]", err)
		return
	}
	logging.FromContext(c).Infof("[user][create][ok] id=%d role=%s", user.ID, user.Role)
	c.JSON(http.StatusCreated, user)
}
