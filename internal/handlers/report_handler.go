package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"construtora/internal/models"
	"construtora/internal/services"
)

type ReportHandler struct {
	service services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// GET /api/reports/tasks.pdf?projetoId=
func (h *ReportHandler) TaskBoard(c *gin.Context) {
	projetoID, err := queryID(c, "projetoId")
	if err != nil {
		badRequest(c, "[report][board]", err)
		return
	}
	body, err := h.service.BoardPDF(c.Request.Context(), models.TaskFilter{ProjetoID: projetoID})
	if err != nil {
		respondError(c, "[report][board]", err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="tarefas.pdf"`)
	c.Data(http.StatusOK, "application/pdf", body)
}
