package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"construtora/internal/logging"
	"construtora/internal/models"
	"construtora/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	Title        string            `json:"title" binding:"required"`
	Description  *string           `json:"description"`
	Status       models.TaskStatus `json:"status" binding:"required"`
	Priority     *int              `json:"priority" binding:"required"`
	DueDate      string            `json:"dueDate" binding:"required"`
	AssignedToID nullableID        `json:"assignedToId"`
	AuthorID     *int64            `json:"authorId"`
	ProjetoID    nullableID        `json:"projetoId"`
}

// updateTaskRequest is a partial patch; absent keys keep their value and
// null or "" clears the nullable columns.
type updateTaskRequest struct {
	Title        *string            `json:"title"`
	Description  nullableString     `json:"description"`
	Status       *models.TaskStatus `json:"status"`
	Priority     *int               `json:"priority"`
	DueDate      nullableString     `json:"dueDate"`
	AssignedToID nullableID         `json:"assignedToId"`
	ProjetoID    nullableID         `json:"projetoId"`
}

// Create godoc
// @Summary  Create a task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Param    task  body      createTaskRequest  true  "Task"
// @Success  201   {object}  models.Task
// @Failure  400   {object}  map[string]string
// @Failure  404   {object}  map[string]string
// @Router   /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	log := logging.FromContext(c)
	userID, role, _ := getUserAndRole(c)
	log.Infof("[task][create] call by userID=%d role=%s", userID, role)

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[task][create]", err)
		return
	}
	if req.AuthorID != nil && *req.AuthorID != userID {
		log.Infof("[task][create][deny] authorId=%d differs from session user=%d", *req.AuthorID, userID)
		c.JSON(http.StatusForbidden, gin.H{"message": "authorId must match the session user"})
		return
	}
	if req.AssignedToID.Value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "assignedToId is required"})
		return
	}
	due, err := parseDate(req.DueDate)
	if err != nil {
		log.Infof("[task][create][err] invalid dueDate=%q: %v", req.DueDate, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid dueDate (YYYY-MM-DD or RFC3339)"})
		return
	}

	task := &models.Task{
		Title:        req.Title,
		Description:  req.Description,
		Status:       models.TaskStatus(strings.TrimSpace(string(req.Status))),
		Priority:     *req.Priority,
		DueDate:      &due,
		AuthorID:     userID,
		AssignedToID: *req.AssignedToID.Value,
		ProjetoID:    req.ProjetoID.Value,
	}
	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		respondError(c, "[task][create]", err)
		return
	}
	log.Infof("[task][create][ok] id=%d assignedToId=%d title=%q", created.ID, created.AssignedToID, created.Title)
	c.JSON(http.StatusCreated, created)
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, "[task][getByID]", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /api/tasks?projetoId=&assignedToId=&status=
func (h *TaskHandler) GetAll(c *gin.Context) {
	log := logging.FromContext(c)
	userID, role, _ := getUserAndRole(c)
	log.Infof("[task][list] call by userID=%d role=%s q=%v", userID, role, c.Request.URL.RawQuery)

	var filter models.TaskFilter
	var err error
	if filter.ProjetoID, err = queryID(c, "projetoId"); err != nil {
		badRequest(c, "[task][list]", err)
		return
	}
	if filter.AssignedToID, err = queryID(c, "assignedToId"); err != nil {
		badRequest(c, "[task][list]", err)
		return
	}
	if v, ok := c.GetQuery("status"); ok && v != "" {
		st := models.TaskStatus(v)
		filter.Status = &st
	}

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "[task][list]", err)
		return
	}
	log.Infof("[task][list][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, tasks)
}

// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	log := logging.FromContext(c)
	userID, role, _ := getUserAndRole(c)
	log.Infof("[task][update] call by userID=%d role=%s id_param=%s", userID, role, c.Param("id"))

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[task][update]", err)
		return
	}

	if req.AssignedToID.Set && req.AssignedToID.Value == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "assignedToId cannot be cleared"})
		return
	}

	patch := models.TaskPatch{
		Title:        req.Title,
		Status:       req.Status,
		Priority:     req.Priority,
		AssignedToID: req.AssignedToID.Value,
	}
	if req.Description.cleared() {
		patch.ClearDescription = true
	} else if req.Description.Set {
		patch.Description = req.Description.Value
	}
	if req.DueDate.cleared() {
		patch.ClearDueDate = true
	} else if req.DueDate.Set {
		t, err := parseDate(*req.DueDate.Value)
		if err != nil {
			log.Infof("[task][update][err] invalid dueDate=%q: %v", *req.DueDate.Value, err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid dueDate (YYYY-MM-DD or RFC3339)"})
			return
		}
		patch.DueDate = &t
	}
	if req.ProjetoID.Set {
		if req.ProjetoID.Value == nil {
			patch.ClearProjeto = true
		} else {
			patch.ProjetoID = req.ProjetoID.Value
		}
	}

	updated, err := h.service.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, "[task][update]", err)
		return
	}
	log.Infof("[task][update][ok] id=%d status=%s", id, updated.Status)
	c.JSON(http.StatusOK, updated)
}

// POST /api/tasks/:id/status { "status": "EM_ANDAMENTO" }
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	log := logging.FromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var body struct {
		Status models.TaskStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "[task][status]", err)
		return
	}
	updated, err := h.service.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		respondError(c, "[task][status]", err)
		return
	}
	log.Infof("[task][status][ok] id=%d new=%s", id, body.Status)
	c.JSON(http.StatusOK, updated)
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	log := logging.FromContext(c)
	userID, role, _ := getUserAndRole(c)
	log.Infof("[task][delete] call by userID=%d role=%s id_param=%s", userID, role, c.Param("id"))

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "[task][delete]", err)
		return
	}
	log.Infof("[task][delete][ok] id=%d", id)
	c.Status(http.StatusNoContent)
}
