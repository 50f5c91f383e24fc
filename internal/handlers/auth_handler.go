package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"construtora/internal/logging"
	"construtora/internal/models"
	"construtora/internal/services"
	"construtora/internal/utils"
)

type AuthHandler struct {
	userService services.UserService
	tokens      *utils.TokenManager
}

func NewAuthHandler(userService services.UserService, tokens *utils.TokenManager) *AuthHandler {
	return &AuthHandler{userService: userService, tokens: tokens}
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

// @Summary      Log in
// @Description  Checks the credentials and returns a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  loginResponse
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	log := logging.FromContext(c)

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[auth][login]", err)
		return
	}
	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "[auth][login]", err)
		return
	}
	token, exp, err := h.tokens.Issue(user.ID, user.Role)
	if err != nil {
		respondError(c, "[auth][login][token]", err)
		return
	}
	log.Infof("[auth][login][ok] userID=%d role=%s", user.ID, user.Role)
	c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: exp, User: user})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, _, _ := getUserAndRole(c)
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "[auth][me]", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
