package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"construtora/internal/logging"
	"construtora/internal/models"
	"construtora/internal/services"
)

type FileHandler struct {
	service services.FileService
}

func NewFileHandler(service services.FileService) *FileHandler {
	return &FileHandler{service: service}
}

type createFileRequest struct {
	URL       string     `json:"url" binding:"required,http_url"`
	Filename  string     `json:"filename" binding:"required"`
	Mimetype  string     `json:"mimetype" binding:"required"`
	TaskID    nullableID `json:"taskId"`
	ProjetoID nullableID `json:"projetoId"`
}

type updateFileRequest struct {
	TaskID    nullableID `json:"taskId"`
	ProjetoID nullableID `json:"projetoId"`
}

// GET /api/files?taskId=&projetoId=
func (h *FileHandler) List(c *gin.Context) {
	var filter models.FileFilter
	var err error
	if filter.TaskID, err = queryID(c, "taskId"); err != nil {
		badRequest(c, "[file][list]", err)
		return
	}
	if filter.ProjetoID, err = queryID(c, "projetoId"); err != nil {
		badRequest(c, "[file][list]", err)
		return
	}
	files, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "[file][list]", err)
		return
	}
	c.JSON(http.StatusOK, files)
}

// POST /api/files
func (h *FileHandler) Create(c *gin.Context) {
	userID, _, _ := getUserAndRole(c)
	var req createFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[file][create]", err)
		return
	}
	f, err := h.service.Create(c.Request.Context(), &models.File{
		URL:          req.URL,
		Filename:     req.Filename,
		Mimetype:     req.Mimetype,
		UploadedByID: userID,
		TaskID:       req.TaskID.Value,
		ProjetoID:    req.ProjetoID.Value,
	})
	if err != nil {
		respondError(c, "[file][create]", err)
		return
	}
	logging.FromContext(c).Infof("[file][create][ok] id=%d uploader=%d filename=%q", f.ID, userID, f.Filename)
	c.JSON(http.StatusCreated, f)
}

// PUT /api/files/:id
func (h *FileHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[file][update]", err)
		return
	}
	f, err := h.service.UpdateAssociations(c.Request.Context(), id, models.FileAssociation{
		TaskID:     req.TaskID.Value,
		SetTask:    req.TaskID.Set,
		ProjetoID:  req.ProjetoID.Value,
		SetProjeto: req.ProjetoID.Set,
	})
	if err != nil {
		respondError(c, "[file][update]", err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DELETE /api/files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	h.delete(c, id)
}

// DELETE /api/files?id=
func (h *FileHandler) DeleteByQuery(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}
	h.delete(c, id)
}

func (h *FileHandler) delete(c *gin.Context, id int64) {
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[file][delete]", err)
		return
	}
	logging.FromContext(c).Infof("[file][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
