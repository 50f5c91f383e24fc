package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construtora/internal/models"
)

func TestBoardGenerator_BoardReport(t *testing.T) {
	due := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: 1, Title: "Fundação", Status: models.StatusConcluida, Priority: 1, DueDate: &due,
			AssignedTo: &models.UserRef{ID: 2, Name: "João"}, Projeto: &models.ProjetoRef{ID: 1, Title: "Edifício Ipê"}},
		{ID: 2, Title: "Alvenaria do 2º pavimento", Status: models.StatusEmAndamento},
	}

	var buf bytes.Buffer
	err := NewBoardGenerator("").BoardReport(&buf, BoardData{
		Title:       "Quadro de tarefas",
		GeneratedAt: time.Date(2025, 2, 3, 14, 30, 0, 0, time.UTC),
		Columns:     models.GroupByStatus(tasks),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "curto", truncate("curto", 10))
	assert.Equal(t, "abc…", truncate("abcdef", 4))
	assert.Equal(t, "—", formatDue(nil))
}
