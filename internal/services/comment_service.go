package services

import (
	"context"
	"strings"

	"construtora/internal/authz"
	"construtora/internal/metrics"
	"construtora/internal/models"
	"construtora/internal/repositories"
)

type CommentService interface {
	List(ctx context.Context, taskID int64) ([]models.Comment, error)
	Create(ctx context.Context, taskID, authorID int64, message string) (*models.Comment, error)
	UpdateMessage(ctx context.Context, taskID, commentID, userID int64, role, message string) (*models.Comment, error)
	Delete(ctx context.Context, taskID, commentID, userID int64, role string) error
	// MarkViewed records userID on every comment of the task it has not
	// seen yet. Calling it again is a no-op.
	MarkViewed(ctx context.Context, taskID, userID int64) (int, error)
}

type commentService struct {
	repo    repositories.CommentRepository
	tasks   repositories.TaskRepository
	metrics *metrics.Metrics
}

func NewCommentService(repo repositories.CommentRepository, tasks repositories.TaskRepository, m *metrics.Metrics) CommentService {
	return &commentService{repo: repo, tasks: tasks, metrics: m}
}

func (s *commentService) requireTask(ctx context.Context, taskID int64) error {
	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}
	return nil
}

// requireComment loads a comment and checks it belongs to taskID.
func (s *commentService) requireComment(ctx context.Context, taskID, commentID int64) (*models.Comment, error) {
	c, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.TaskID != taskID {
		return nil, ErrCommentNotFound
	}
	return c, nil
}

func (s *commentService) List(ctx context.Context, taskID int64) ([]models.Comment, error) {
	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}
	return s.repo.ListByTask(ctx, taskID)
}

func (s *commentService) Create(ctx context.Context, taskID, authorID int64, message string) (*models.Comment, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validationf("message is required")
	}
	if err := s.requireTask(ctx, taskID); err != nil {
		return nil, err
	}
	c := &models.Comment{
		Message:  message,
		AuthorID: authorID,
		TaskID:   taskID,
		ViewedBy: []int64{authorID},
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.requireComment(ctx, taskID, c.ID)
}

func (s *commentService) UpdateMessage(ctx context.Context, taskID, commentID, userID int64, role, message string) (*models.Comment, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, validationf("message is required")
	}
	c, err := s.requireComment(ctx, taskID, commentID)
	if err != nil {
		return nil, err
	}
	if !authz.CanModifyComment(role, userID, c.AuthorID) {
		return nil, ErrForbidden
	}
	if err := s.repo.UpdateMessage(ctx, commentID, message); err != nil {
		return nil, err
	}
	return s.requireComment(ctx, taskID, commentID)
}

func (s *commentService) Delete(ctx context.Context, taskID, commentID, userID int64, role string) error {
	c, err := s.requireComment(ctx, taskID, commentID)
	if err != nil {
		return err
	}
	if !authz.CanModifyComment(role, userID, c.AuthorID) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, commentID)
}

func (s *commentService) MarkViewed(ctx context.Context, taskID, userID int64) (int, error) {
	if err := s.requireTask(ctx, taskID); err != nil {
		return 0, err
	}
	n, err := s.repo.MarkViewed(ctx, taskID, userID)
	if err != nil {
		return 0, err
	}
	s.metrics.CommentsViewed(n)
	return n, nil
}
