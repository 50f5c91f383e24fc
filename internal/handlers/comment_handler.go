package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"construtora/internal/logging"
	"construtora/internal/services"
)

type CommentHandler struct {
	service services.CommentService
}

func NewCommentHandler(service services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

type commentRequest struct {
	Message string `json:"message" binding:"required"`
}

// GET /api/tasks/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	comments, err := h.service.List(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, "[comment][list]", err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// POST /api/tasks/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, _, _ := getUserAndRole(c)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[comment][create]", err)
		return
	}
	comment, err := h.service.Create(c.Request.Context(), taskID, userID, req.Message)
	if err != nil {
		respondError(c, "[comment][create]", err)
		return
	}
	logging.FromContext(c).Infof("[comment][create][ok] id=%d task=%d author=%d", comment.ID, taskID, userID)
	c.JSON(http.StatusCreated, comment)
}

// PUT /api/tasks/:id/comments/:commentId
func (h *CommentHandler) Update(c *gin.Context) {
	userID, role, _ := getUserAndRole(c)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "[comment][update]", err)
		return
	}
	comment, err := h.service.UpdateMessage(c.Request.Context(), taskID, commentID, userID, role, req.Message)
	if err != nil {
		respondError(c, "[comment][update]", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DELETE /api/tasks/:id/comments/:commentId
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, role, _ := getUserAndRole(c)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentId")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), taskID, commentID, userID, role); err != nil {
		respondError(c, "[comment][delete]", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/tasks/:id/mark-viewed
func (h *CommentHandler) MarkViewed(c *gin.Context) {
	userID, _, _ := getUserAndRole(c)
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	n, err := h.service.MarkViewed(c.Request.Context(), taskID, userID)
	if err != nil {
		respondError(c, "[comment][markViewed]", err)
		return
	}
	logging.FromContext(c).Debugf("[comment][markViewed][ok] task=%d user=%d marked=%d", taskID, userID, n)
	c.JSON(http.StatusOK, gin.H{"marked": n})
}
