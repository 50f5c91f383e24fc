package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"construtora/internal/models"
	"construtora/internal/services"
)

type ProjetoHandler struct {
	service services.ProjetoService
}

func NewProjetoHandler(service services.ProjetoService) *ProjetoHandler {
	return &ProjetoHandler{service: service}
}

func (h *ProjetoHandler) List(c *gin.Context) {
	projetos, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "[projeto][list]", err)
		return
	}
	c.JSON(http.StatusOK, projetos)
}

func (h *ProjetoHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[projeto][get]", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjetoHandler) Create(c *gin.Context) {
	var req struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[projeto][create]", err)
		return
	}
	p, err := h.service.Create(c.Request.Context(), &models.Projeto{Title: req.Title, Description: req.Description})
	if err != nil {
		respondError(c, "[projeto][create]", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProjetoHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[projeto][delete]", err)
		return
	}
	c.Status(http.StatusNoContent)
}
