// internal/services/task_service.go
package services

import (
	"context"
	"strings"
	"time"

	"construtora/internal/logging"
	"construtora/internal/metrics"
	"construtora/internal/models"
	"construtora/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id int64) (*models.Task, error)
	GetDetail(ctx context.Context, id int64) (*models.TaskDetail, error)
	GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	// Update applies a partial patch: only supplied fields change.
	Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
}

type taskService struct {
	repo     repositories.TaskRepository
	users    repositories.UserRepository
	projetos repositories.ProjetoRepository
	comments repositories.CommentRepository
	files    repositories.FileRepository
	notifier Notifier
	metrics  *metrics.Metrics
}

// NewTaskService creates a new instance of TaskService. notifier and m may
// be nil.
func NewTaskService(
	repo repositories.TaskRepository,
	users repositories.UserRepository,
	projetos repositories.ProjetoRepository,
	comments repositories.CommentRepository,
	files repositories.FileRepository,
	notifier Notifier,
	m *metrics.Metrics,
) TaskService {
	return &taskService{
		repo:     repo,
		users:    users,
		projetos: projetos,
		comments: comments,
		files:    files,
		notifier: notifier,
		metrics:  m,
	}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, validationf("title is required")
	}
	if !task.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if task.Priority < 0 {
		return nil, validationf("priority must not be negative")
	}
	if task.DueDate == nil {
		return nil, validationf("dueDate is required")
	}
	task.Description = normalizeText(task.Description)

	if ok, err := s.users.Exists(ctx, task.AuthorID); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrUserNotFound
	}
	if err := s.checkAssignee(ctx, task.AssignedToID); err != nil {
		return nil, err
	}
	if task.ProjetoID != nil {
		if err := s.checkProjeto(ctx, *task.ProjetoID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}

	created, err := s.GetByID(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	s.notifyAssignee(ctx, created)
	return created, nil
}

func (s *taskService) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) GetDetail(ctx context.Context, id int64) (*models.TaskDetail, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByTask(ctx, id)
	if err != nil {
		return nil, err
	}
	files, err := s.files.List(ctx, models.FileFilter{TaskID: &id})
	if err != nil {
		return nil, err
	}
	return &models.TaskDetail{Task: *task, Comments: comments, Files: files}, nil
}

func (s *taskService) GetAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.repo.FindAll(ctx, filter)
}

func (s *taskService) Update(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prevStatus := existing.Status
	prevAssignee := existing.AssignedToID

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, validationf("title must not be empty")
		}
		existing.Title = title
	}
	switch {
	case patch.ClearDescription:
		existing.Description = nil
	case patch.Description != nil:
		existing.Description = normalizeText(patch.Description)
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		existing.Status = *patch.Status
	}
	if patch.Priority != nil {
		if *patch.Priority < 0 {
			return nil, validationf("priority must not be negative")
		}
		existing.Priority = *patch.Priority
	}
	switch {
	case patch.ClearDueDate:
		existing.DueDate = nil
	case patch.DueDate != nil:
		existing.DueDate = patch.DueDate
	}
	if patch.AssignedToID != nil {
		if err := s.checkAssignee(ctx, *patch.AssignedToID); err != nil {
			return nil, err
		}
		existing.AssignedToID = *patch.AssignedToID
	}
	switch {
	case patch.ClearProjeto:
		existing.ProjetoID = nil
	case patch.ProjetoID != nil:
		if err := s.checkProjeto(ctx, *patch.ProjetoID); err != nil {
			return nil, err
		}
		existing.ProjetoID = patch.ProjetoID
	}

	existing.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	s.metrics.StatusChanged(string(prevStatus), string(existing.Status))

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated.AssignedToID != prevAssignee {
		s.notifyAssignee(ctx, updated)
	}
	return updated, nil
}

func (s *taskService) UpdateStatus(ctx context.Context, id int64, to models.TaskStatus) (*models.Task, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	s.metrics.StatusChanged(string(current.Status), string(to))
	return s.GetByID(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *taskService) checkAssignee(ctx context.Context, userID int64) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssigneeNotFound
	}
	return nil
}

func (s *taskService) checkProjeto(ctx context.Context, projetoID int64) error {
	ok, err := s.projetos.Exists(ctx, projetoID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProjetoNotFound
	}
	return nil
}

// notifyAssignee never fails the request; delivery errors are only logged.
func (s *taskService) notifyAssignee(ctx context.Context, t *models.Task) {
	if s.notifier == nil || t == nil {
		return
	}
	assignee, err := s.users.GetByID(ctx, t.AssignedToID)
	if err != nil || assignee == nil {
		logging.Logger.Warnf("[task][notify] load assignee=%d: %v", t.AssignedToID, err)
		return
	}
	if err := s.notifier.TaskAssigned(ctx, assignee, t); err != nil {
		logging.Logger.Warnf("[task][notify][err] task=%d assignee=%d: %v", t.ID, assignee.ID, err)
	}
}

func normalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
