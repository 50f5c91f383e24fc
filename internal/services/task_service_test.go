package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construtora/internal/authz"
	"construtora/internal/models"
	"construtora/internal/repositories/repotest"
)

type recordingNotifier struct {
	mu    sync.Mutex
	calls []int64
}

func (n *recordingNotifier) TaskAssigned(_ context.Context, assignee *models.User, _ *models.Task) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, assignee.ID)
	return nil
}

type taskFixture struct {
	store    *repotest.Store
	svc      TaskService
	notifier *recordingNotifier
	author   *models.User
	worker   *models.User
	projeto  *models.Projeto
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	store := repotest.New()
	n := &recordingNotifier{}
	return &taskFixture{
		store:    store,
		notifier: n,
		svc:      NewTaskService(store.Tasks(), store.Users(), store.Projetos(), store.Comments(), store.Files(), n, nil),
		author:   store.SeedUser("Ana", authz.RoleAdmin),
		worker:   store.SeedUser("Bruno", authz.RoleUser),
		projeto:  store.SeedProjeto("Residencial Aurora"),
	}
}

func (f *taskFixture) newTask(status models.TaskStatus) *models.Task {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	desc := "Conferir armaduras do bloco B"
	return &models.Task{
		Title:        "Concretagem laje 3",
		Description:  &desc,
		Status:       status,
		Priority:     2,
		DueDate:      &due,
		AuthorID:     f.author.ID,
		AssignedToID: f.worker.ID,
		ProjetoID:    &f.projeto.ID,
	}
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("every valid status is accepted", func(t *testing.T) {
		f := newTaskFixture(t)
		for _, st := range models.BoardColumns {
			created, err := f.svc.Create(ctx, f.newTask(st))
			require.NoError(t, err)
			assert.Equal(t, st, created.Status)
			assert.True(t, created.Status.Valid())
		}
	})

	t.Run("hydrates refs and notifies the assignee", func(t *testing.T) {
		f := newTaskFixture(t)
		created, err := f.svc.Create(ctx, f.newTask(models.StatusPendente))
		require.NoError(t, err)
		require.NotNil(t, created.Author)
		require.NotNil(t, created.AssignedTo)
		require.NotNil(t, created.Projeto)
		assert.Equal(t, "Ana", created.Author.Name)
		assert.Equal(t, "Bruno", created.AssignedTo.Name)
		assert.Equal(t, "Residencial Aurora", created.Projeto.Title)
		assert.Equal(t, []int64{f.worker.ID}, f.notifier.calls)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		f := newTaskFixture(t)
		cases := map[string]func(*models.Task){
			"unknown status":    func(tk *models.Task) { tk.Status = "ARQUIVADA" },
			"lowercase status":  func(tk *models.Task) { tk.Status = "pendente" },
			"blank title":       func(tk *models.Task) { tk.Title = "   " },
			"negative priority": func(tk *models.Task) { tk.Priority = -1 },
			"missing due date":  func(tk *models.Task) { tk.DueDate = nil },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				tk := f.newTask(models.StatusPendente)
				mutate(tk)
				_, err := f.svc.Create(ctx, tk)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
		all, err := f.svc.GetAll(ctx, models.TaskFilter{})
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("unknown references are not found", func(t *testing.T) {
		f := newTaskFixture(t)

		tk := f.newTask(models.StatusPendente)
		tk.AssignedToID = 999
		_, err := f.svc.Create(ctx, tk)
		assert.ErrorIs(t, err, ErrAssigneeNotFound)
		assert.ErrorIs(t, err, ErrNotFound)

		tk = f.newTask(models.StatusPendente)
		missing := int64(999)
		tk.ProjetoID = &missing
		_, err = f.svc.Create(ctx, tk)
		assert.ErrorIs(t, err, ErrProjetoNotFound)
	})

	t.Run("blank description is stored as null", func(t *testing.T) {
		f := newTaskFixture(t)
		tk := f.newTask(models.StatusPendente)
		blank := "  "
		tk.Description = &blank
		created, err := f.svc.Create(ctx, tk)
		require.NoError(t, err)
		assert.Nil(t, created.Description)
	})
}

func TestTaskService_UpdateStatusOnlyKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	created, err := f.svc.Create(ctx, f.newTask(models.StatusPendente))
	require.NoError(t, err)

	next := models.StatusEmAndamento
	updated, err := f.svc.Update(ctx, created.ID, models.TaskPatch{Status: &next})
	require.NoError(t, err)
	assert.Equal(t, models.StatusEmAndamento, updated.Status)

	got, err := f.svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, got, cmpopts.IgnoreFields(models.Task{}, "Status", "UpdatedAt")); diff != "" {
		t.Errorf("fields other than status changed (-before +after):\n%s", diff)
	}
}

func TestTaskService_UpdatePatch(t *testing.T) {
	ctx := context.Background()

	t.Run("clear projeto", func(t *testing.T) {
		f := newTaskFixture(t)
		created, err := f.svc.Create(ctx, f.newTask(models.StatusPendente))
		require.NoError(t, err)
		require.NotNil(t, created.ProjetoID)

		updated, err := f.svc.Update(ctx, created.ID, models.TaskPatch{ClearProjeto: true})
		require.NoError(t, err)
		assert.Nil(t, updated.ProjetoID)
		assert.Nil(t, updated.Projeto)
		assert.Equal(t, created.Title, updated.Title)
	})

	t.Run("clear description and due date", func(t *testing.T) {
		f := newTaskFixture(t)
		created, err := f.svc.Create(ctx, f.newTask(models.StatusPendente))
		require.NoError(t, err)
		require.NotNil(t, created.Description)

		updated, err := f.svc.Update(ctx, created.ID, models.TaskPatch{ClearDescription: true, ClearDueDate: true})
		require.NoError(t, err)
		assert.Nil(t, updated.Description)
		assert.Nil(t, updated.DueDate)
		assert.Equal(t, created.ProjetoID, updated.ProjetoID)
	})

	t.Run("empty patch changes nothing", func(t *testing.T) {
		f := newTaskFixture(t)
		created, err := f.svc.Create(ctx, f.newTask(models.StatusConcluida))
		require.NoError(t, err)

		updated, err := f.svc.Update(ctx, created.ID, models.TaskPatch{})
		require.NoError(t, err)
		if diff := cmp.Diff(created, updated, cmpopts.IgnoreFields(models.Task{}, "UpdatedAt")); diff != "" {
			t.Errorf("unexpected change (-want +got):\n%s", diff)
		}
	})

	t.Run("full payload replaces every field", func(t *testing.T) {
		f := newTaskFixture(t)
		created, err := f.svc.Create(ctx, f.newTask(models.StatusPendente))
		require.NoError(t, err)

		other := f.store.SeedProjeto("Galpão Norte")
		title, desc, prio := "Impermeabilização", "Subsolo", 5
		st := models.StatusConcluida
		due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		updated, err := f.svc.Update(ctx, created.ID, models.TaskPatch{
			Title:        &title,
			Description:  &desc,
			Status:       &st,
			Priority:     &prio,
			DueDate:      &due,
			AssignedToID: &f.author.ID,
			ProjetoID:    &other.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)
		assert.Equal(t, desc, *updated.Description)
		assert.Equal(t, st, updated.Status)
		assert.Equal(t, prio, updated.Priority)
		assert.True(t, due.Equal(*updated.DueDate))
		assert.Equal(t, f.author.ID, updated.AssignedToID)
		assert.Equal(t, other.ID, *updated.ProjetoID)
	})

	t.Run("assignee change notifies the new assignee only", func(t *testing.T) {
		f := newTaskFixture(t)
		created, err := f.svc.Create(ctx, f.newTask(models.StatusPendente))
		require.NoError(t, err)

		prio := 9
		_, err = f.svc.Update(ctx, created.ID, models.TaskPatch{Priority: &prio})
		require.NoError(t, err)
		_, err = f.svc.Update(ctx, created.ID, models.TaskPatch{AssignedToID: &f.author.ID})
		require.NoError(t, err)

		assert.Equal(t, []int64{f.worker.ID, f.author.ID}, f.notifier.calls)
	})

	t.Run("validation and lookups", func(t *testing.T) {
		f := newTaskFixture(t)
		created, err := f.svc.Create(ctx, f.newTask(models.StatusPendente))
		require.NoError(t, err)

		bad := models.TaskStatus("DONE")
		_, err = f.svc.Update(ctx, created.ID, models.TaskPatch{Status: &bad})
		assert.ErrorIs(t, err, ErrInvalidStatus)

		ghost := int64(4242)
		_, err = f.svc.Update(ctx, created.ID, models.TaskPatch{AssignedToID: &ghost})
		assert.ErrorIs(t, err, ErrAssigneeNotFound)

		_, err = f.svc.Update(ctx, 4242, models.TaskPatch{})
		assert.ErrorIs(t, err, ErrTaskNotFound)

		got, err := f.svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPendente, got.Status)
		assert.Equal(t, f.worker.ID, got.AssignedToID)
	})
}

func TestTaskService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)
	created, err := f.svc.Create(ctx, f.newTask(models.StatusConcluida))
	require.NoError(t, err)

	// no terminal state: CONCLUIDA can move back
	got, err := f.svc.UpdateStatus(ctx, created.ID, models.StatusPendente)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendente, got.Status)

	_, err = f.svc.UpdateStatus(ctx, created.ID, "BLOQUEADA")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(ctx, 777, models.StatusConcluida)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskService_GetAllFilters(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)

	a := f.newTask(models.StatusPendente)
	_, err := f.svc.Create(ctx, a)
	require.NoError(t, err)

	b := f.newTask(models.StatusEmAndamento)
	b.ProjetoID = nil
	b.AssignedToID = f.author.ID
	_, err = f.svc.Create(ctx, b)
	require.NoError(t, err)

	all, err := f.svc.GetAll(ctx, models.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID, "newest first")

	byProjeto, err := f.svc.GetAll(ctx, models.TaskFilter{ProjetoID: &f.projeto.ID})
	require.NoError(t, err)
	require.Len(t, byProjeto, 1)
	assert.Equal(t, a.ID, byProjeto[0].ID)

	byAssignee, err := f.svc.GetAll(ctx, models.TaskFilter{AssignedToID: &f.author.ID})
	require.NoError(t, err)
	require.Len(t, byAssignee, 1)
	assert.Equal(t, b.ID, byAssignee[0].ID)

	st := models.StatusEmAndamento
	byStatus, err := f.svc.GetAll(ctx, models.TaskFilter{Status: &st})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)

	bad := models.TaskStatus("x")
	_, err = f.svc.GetAll(ctx, models.TaskFilter{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTaskService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	f := newTaskFixture(t)
	comments := NewCommentService(f.store.Comments(), f.store.Tasks(), nil)
	files := NewFileService(f.store.Files(), f.store.Tasks(), f.store.Projetos())

	created, err := f.svc.Create(ctx, f.newTask(models.StatusPendente))
	require.NoError(t, err)
	_, err = comments.Create(ctx, created.ID, f.author.ID, "Começar segunda")
	require.NoError(t, err)
	_, err = comments.Create(ctx, created.ID, f.worker.ID, "Ok")
	require.NoError(t, err)
	file, err := files.Create(ctx, &models.File{
		URL:          "https://cdn.example.com/planta.pdf",
		Filename:     "planta.pdf",
		Mimetype:     "application/pdf",
		UploadedByID: f.worker.ID,
		TaskID:       &created.ID,
	})
	require.NoError(t, err)

	detail, err := f.svc.GetDetail(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Comments, 2)
	assert.Len(t, detail.Files, 1)

	require.NoError(t, f.svc.Delete(ctx, created.ID))

	_, err = f.svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Zero(t, f.store.CommentCount(created.ID))

	kept, err := files.GetByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.TaskID)

	assert.ErrorIs(t, f.svc.Delete(ctx, created.ID), ErrTaskNotFound)
}
