package repotest

import (
	"context"
	"fmt"
	"sort"

	"construtora/internal/models"
)

type taskRepo struct{ s *Store }

// hydrate fills the eager-loaded refs the SQL joins would return. The
// caller holds the lock.
func (s *Store) hydrate(t models.Task) models.Task {
	if u, ok := s.users[t.AuthorID]; ok {
		ref := u.Ref()
		t.Author = &ref
	}
	if u, ok := s.users[t.AssignedToID]; ok {
		ref := u.Ref()
		t.AssignedTo = &ref
	}
	t.Projeto = nil
	if t.ProjetoID != nil {
		if p, ok := s.projetos[*t.ProjetoID]; ok {
			t.Projeto = &models.ProjetoRef{ID: p.ID, Title: p.Title}
		}
	}
	return t
}

func (r taskRepo) Store(_ context.Context, t *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[t.AuthorID]; !ok {
		return fmt.Errorf("store task: author %d violates foreign key", t.AuthorID)
	}
	if _, ok := r.s.users[t.AssignedToID]; !ok {
		return fmt.Errorf("store task: assignee %d violates foreign key", t.AssignedToID)
	}
	t.ID = r.s.id()
	now := r.s.tick()
	t.CreatedAt, t.UpdatedAt = now, now
	cp := *t
	r.s.tasks[t.ID] = &cp
	return nil
}

func (r taskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, nil
	}
	out := r.s.hydrate(*t)
	return &out, nil
}

func (r taskRepo) FindAll(_ context.Context, filter models.TaskFilter) ([]models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := []models.Task{}
	for _, t := range r.s.tasks {
		if filter.ProjetoID != nil && (t.ProjetoID == nil || *t.ProjetoID != *filter.ProjetoID) {
			continue
		}
		if filter.AssignedToID != nil && t.AssignedToID != *filter.AssignedToID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		res = append(res, r.s.hydrate(*t))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r taskRepo) Update(_ context.Context, t *models.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tasks[t.ID]
	if !ok {
		return nil
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.Status = t.Status
	cur.Priority = t.Priority
	cur.DueDate = t.DueDate
	cur.AssignedToID = t.AssignedToID
	cur.ProjetoID = t.ProjetoID
	cur.UpdatedAt = t.UpdatedAt
	return nil
}

func (r taskRepo) UpdateStatus(_ context.Context, id int64, to models.TaskStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tasks[id]; ok {
		t.Status = to
		t.UpdatedAt = r.s.tick()
	}
	return nil
}

func (r taskRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for cid, c := range r.s.comments {
		if c.TaskID == id {
			delete(r.s.comments, cid)
		}
	}
	for _, f := range r.s.files {
		if f.TaskID != nil && *f.TaskID == id {
			f.TaskID = nil
		}
	}
	delete(r.s.tasks, id)
	return nil
}
