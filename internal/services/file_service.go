package services

import (
	"context"
	"mime"
	"strings"

	"construtora/internal/models"
	"construtora/internal/repositories"
)

type FileService interface {
	Create(ctx context.Context, f *models.File) (*models.File, error)
	GetByID(ctx context.Context, id int64) (*models.File, error)
	List(ctx context.Context, filter models.FileFilter) ([]models.File, error)
	UpdateAssociations(ctx context.Context, id int64, assoc models.FileAssociation) (*models.File, error)
	// Delete drops the metadata row. The stored object is not touched.
	Delete(ctx context.Context, id int64) error
}

type fileService struct {
	repo     repositories.FileRepository
	tasks    repositories.TaskRepository
	projetos repositories.ProjetoRepository
}

func NewFileService(repo repositories.FileRepository, tasks repositories.TaskRepository, projetos repositories.ProjetoRepository) FileService {
	return &fileService{repo: repo, tasks: tasks, projetos: projetos}
}

func (s *fileService) Create(ctx context.Context, f *models.File) (*models.File, error) {
	f.URL = strings.TrimSpace(f.URL)
	f.Filename = strings.TrimSpace(f.Filename)
	f.Mimetype = strings.TrimSpace(f.Mimetype)

	if f.URL == "" {
		return nil, validationf("url is required")
	}
	if f.Filename == "" {
		return nil, validationf("filename is required")
	}
	if _, _, err := mime.ParseMediaType(f.Mimetype); err != nil {
		return nil, validationf("mimetype %q is not a valid media type", f.Mimetype)
	}
	if err := s.checkTargets(ctx, f.TaskID, f.ProjetoID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, f.ID)
}

func (s *fileService) GetByID(ctx context.Context, id int64) (*models.File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrFileNotFound
	}
	return f, nil
}

func (s *fileService) List(ctx context.Context, filter models.FileFilter) ([]models.File, error) {
	return s.repo.List(ctx, filter)
}

func (s *fileService) UpdateAssociations(ctx context.Context, id int64, assoc models.FileAssociation) (*models.File, error) {
	f, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	taskID, projetoID := f.TaskID, f.ProjetoID
	if assoc.SetTask {
		taskID = assoc.TaskID
	}
	if assoc.SetProjeto {
		projetoID = assoc.ProjetoID
	}
	if err := s.checkTargets(ctx, taskID, projetoID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAssociations(ctx, id, taskID, projetoID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *fileService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *fileService) checkTargets(ctx context.Context, taskID, projetoID *int64) error {
	if taskID != nil {
		t, err := s.tasks.FindByID(ctx, *taskID)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTaskNotFound
		}
	}
	if projetoID != nil {
		ok, err := s.projetos.Exists(ctx, *projetoID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrProjetoNotFound
		}
	}
	return nil
}
