package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"construtora/internal/models"
	"construtora/internal/pdf"
	"construtora/internal/repositories"
)

type ReportService interface {
	// BoardPDF renders the Kanban board of the filtered tasks.
	BoardPDF(ctx context.Context, filter models.TaskFilter) ([]byte, error)
}

type reportService struct {
	tasks    repositories.TaskRepository
	projetos repositories.ProjetoRepository
	gen      pdf.Generator
	now      func() time.Time
}

func NewReportService(tasks repositories.TaskRepository, projetos repositories.ProjetoRepository, gen pdf.Generator) ReportService {
	return &reportService{tasks: tasks, projetos: projetos, gen: gen, now: time.Now}
}

func (s *reportService) BoardPDF(ctx context.Context, filter models.TaskFilter) ([]byte, error) {
	title := "Quadro de tarefas"
	if filter.ProjetoID != nil {
		p, err := s.projetos.GetByID(ctx, *filter.ProjetoID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrProjetoNotFound
		}
		title += " — " + p.Title
	}

	tasks, err := s.tasks.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.gen.BoardReport(&buf, pdf.BoardData{
		Title:       title,
		GeneratedAt: s.now(),
		Columns:     models.GroupByStatus(tasks),
	}); err != nil {
		return nil, fmt.Errorf("render board report: %w", err)
	}
	return buf.Bytes(), nil
}
