package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construtora/internal/models"
)

func TestFileService(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)
	svc := NewFileService(f.store.Files(), f.store.Tasks(), f.store.Projetos())

	task, err := f.svc.Create(ctx, f.newTask(models.StatusPendente))
	require.NoError(t, err)

	newFile := func(name string, taskID, projetoID *int64) *models.File {
		return &models.File{
			URL:          "https://storage.example.com/uploads/" + name,
			Filename:     name,
			Mimetype:     "image/jpeg",
			UploadedByID: f.worker.ID,
			TaskID:       taskID,
			ProjetoID:    projetoID,
		}
	}

	t.Run("create validates metadata", func(t *testing.T) {
		cases := map[string]*models.File{
			"blank url":     {URL: "  ", Filename: "a.jpg", Mimetype: "image/jpeg"},
			"no filename":   {URL: "https://example.com/a.jpg", Filename: " ", Mimetype: "image/jpeg"},
			"bad mime type": {URL: "https://example.com/a.jpg", Filename: "a.jpg", Mimetype: "jpeg image"},
		}
		for name, file := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := svc.Create(ctx, file)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}

		ghost := int64(31337)
		_, err := svc.Create(ctx, newFile("x.jpg", &ghost, nil))
		assert.ErrorIs(t, err, ErrTaskNotFound)
		_, err = svc.Create(ctx, newFile("x.jpg", nil, &ghost))
		assert.ErrorIs(t, err, ErrProjetoNotFound)
	})

	first, err := svc.Create(ctx, newFile("fachada.jpg", &task.ID, nil))
	require.NoError(t, err)
	second, err := svc.Create(ctx, newFile("planta.jpg", nil, &f.projeto.ID))
	require.NoError(t, err)
	third, err := svc.Create(ctx, newFile("obra.jpg", &task.ID, &f.projeto.ID))
	require.NoError(t, err)
	require.NotNil(t, first.UploadedBy)
	assert.Equal(t, "Bruno", first.UploadedBy.Name)

	t.Run("list filters and orders newest first", func(t *testing.T) {
		all, err := svc.List(ctx, models.FileFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{all[0].ID, all[1].ID, all[2].ID})

		byTask, err := svc.List(ctx, models.FileFilter{TaskID: &task.ID})
		require.NoError(t, err)
		require.Len(t, byTask, 2)
		for _, file := range byTask {
			assert.Equal(t, task.ID, *file.TaskID)
		}

		both, err := svc.List(ctx, models.FileFilter{TaskID: &task.ID, ProjetoID: &f.projeto.ID})
		require.NoError(t, err)
		require.Len(t, both, 1)
		assert.Equal(t, third.ID, both[0].ID)
	})

	t.Run("update associations", func(t *testing.T) {
		moved, err := svc.UpdateAssociations(ctx, first.ID, models.FileAssociation{ProjetoID: &f.projeto.ID, SetProjeto: true})
		require.NoError(t, err)
		assert.Equal(t, task.ID, *moved.TaskID, "task untouched when not set")
		assert.Equal(t, f.projeto.ID, *moved.ProjetoID)

		cleared, err := svc.UpdateAssociations(ctx, first.ID, models.FileAssociation{SetTask: true})
		require.NoError(t, err)
		assert.Nil(t, cleared.TaskID)
		assert.NotNil(t, cleared.ProjetoID)

		ghost := int64(999)
		_, err = svc.UpdateAssociations(ctx, first.ID, models.FileAssociation{TaskID: &ghost, SetTask: true})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, second.ID))
		_, err := svc.GetByID(ctx, second.ID)
		assert.ErrorIs(t, err, ErrFileNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, second.ID), ErrFileNotFound)
	})
}
