package services

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construtora/internal/models"
	"construtora/internal/pdf"
)

type captureGenerator struct {
	data pdf.BoardData
}

func (g *captureGenerator) BoardReport(w io.Writer, data pdf.BoardData) error {
	g.data = data
	_, err := io.WriteString(w, "%PDF-fake")
	return err
}

func TestReportService_BoardPDF(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)
	gen := &captureGenerator{}
	svc := NewReportService(f.store.Tasks(), f.store.Projetos(), gen)

	for _, st := range []models.TaskStatus{models.StatusConcluida, models.StatusPendente, models.StatusPendente} {
		_, err := f.svc.Create(ctx, f.newTask(st))
		require.NoError(t, err)
	}

	out, err := svc.BoardPDF(ctx, models.TaskFilter{ProjetoID: &f.projeto.ID})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(out))
	assert.Contains(t, gen.data.Title, "Residencial Aurora")
	assert.Len(t, gen.data.Columns[models.StatusPendente], 2)
	assert.Empty(t, gen.data.Columns[models.StatusEmAndamento])
	assert.Len(t, gen.data.Columns[models.StatusConcluida], 1)

	missing := int64(12345)
	_, err = svc.BoardPDF(ctx, models.TaskFilter{ProjetoID: &missing})
	assert.ErrorIs(t, err, ErrProjetoNotFound)
}
