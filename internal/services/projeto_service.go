package services

import (
	"context"
	"strings"

	"construtora/internal/models"
	"construtora/internal/repositories"
)

type ProjetoService interface {
	Create(ctx context.Context, p *models.Projeto) (*models.Projeto, error)
	GetByID(ctx context.Context, id int64) (*models.Projeto, error)
	List(ctx context.Context) ([]models.Projeto, error)
	Delete(ctx context.Context, id int64) error
}

type projetoService struct {
	repo repositories.ProjetoRepository
}

func NewProjetoService(repo repositories.ProjetoRepository) ProjetoService {
	return &projetoService{repo: repo}
}

func (s *projetoService) Create(ctx context.Context, p *models.Projeto) (*models.Projeto, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return nil, validationf("title is required")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		p.Description = nil
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *projetoService) GetByID(ctx context.Context, id int64) (*models.Projeto, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProjetoNotFound
	}
	return p, nil
}

func (s *projetoService) List(ctx context.Context) ([]models.Projeto, error) {
	return s.repo.List(ctx)
}

func (s *projetoService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
