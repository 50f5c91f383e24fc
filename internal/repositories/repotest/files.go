package repotest

import (
	"context"
	"sort"

	"construtora/internal/models"
)

type fileRepo struct{ s *Store }

func (s *Store) hydrateFile(f models.File) models.File {
	if u, ok := s.users[f.UploadedByID]; ok {
		ref := u.Ref()
		f.UploadedBy = &ref
	}
	return f
}

func (r fileRepo) Create(_ context.Context, f *models.File) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f.ID = r.s.id()
	f.CreatedAt = r.s.tick()
	cp := *f
	r.s.files[f.ID] = &cp
	return nil
}

func (r fileRepo) GetByID(_ context.Context, id int64) (*models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.files[id]
	if !ok {
		return nil, nil
	}
	out := r.s.hydrateFile(*f)
	return &out, nil
}

func (r fileRepo) List(_ context.Context, filter models.FileFilter) ([]models.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := []models.File{}
	for _, f := range r.s.files {
		if filter.TaskID != nil && (f.TaskID == nil || *f.TaskID != *filter.TaskID) {
			continue
		}
		if filter.ProjetoID != nil && (f.ProjetoID == nil || *f.ProjetoID != *filter.ProjetoID) {
			continue
		}
		res = append(res, r.s.hydrateFile(*f))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r fileRepo) UpdateAssociations(_ context.Context, id int64, taskID, projetoID *int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if f, ok := r.s.files[id]; ok {
		f.TaskID = taskID
		f.ProjetoID = projetoID
	}
	return nil
}

func (r fileRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.files, id)
	return nil
}
