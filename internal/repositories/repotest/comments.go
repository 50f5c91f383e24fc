package repotest

import (
	"context"
	"fmt"
	"sort"

	"construtora/internal/models"
)

type commentRepo struct{ s *Store }

func (s *Store) hydrateComment(c models.Comment) models.Comment {
	c.ViewedBy = append([]int64{}, c.ViewedBy...)
	if u, ok := s.users[c.AuthorID]; ok {
		ref := u.Ref()
		c.Author = &ref
	}
	names := []string{}
	for _, id := range c.ViewedBy {
		if u, ok := s.users[id]; ok {
			names = append(names, u.Name)
		}
	}
	sort.Strings(names)
	c.ViewedByNames = names
	return c
}

func (r commentRepo) Create(_ context.Context, c *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tasks[c.TaskID]; !ok {
		return fmt.Errorf("create comment: task %d violates foreign key", c.TaskID)
	}
	c.ID = r.s.id()
	now := r.s.tick()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.ViewedBy == nil {
		c.ViewedBy = []int64{}
	}
	cp := *c
	cp.ViewedBy = append([]int64{}, c.ViewedBy...)
	r.s.comments[c.ID] = &cp
	return nil
}

func (r commentRepo) GetByID(_ context.Context, id int64) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, nil
	}
	out := r.s.hydrateComment(*c)
	return &out, nil
}

func (r commentRepo) ListByTask(_ context.Context, taskID int64) ([]models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := []models.Comment{}
	for _, c := range r.s.comments {
		if c.TaskID == taskID {
			res = append(res, r.s.hydrateComment(*c))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}

func (r commentRepo) UpdateMessage(_ context.Context, id int64, message string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.comments[id]; ok {
		c.Message = message
		c.UpdatedAt = r.s.tick()
	}
	return nil
}

func (r commentRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.comments, id)
	return nil
}

func (r commentRepo) MarkViewed(_ context.Context, taskID, userID int64) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, c := range r.s.comments {
		if c.TaskID == taskID && !c.SeenBy(userID) {
			c.ViewedBy = append(c.ViewedBy, userID)
			n++
		}
	}
	return n, nil
}
