// Package repotest provides in-memory implementations of the repository
// interfaces for service and handler tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"construtora/internal/models"
	"construtora/internal/repositories"
)

// Store keeps every table in memory. Timestamps come from a clock that
// advances one millisecond per write so "newest first" ordering is stable.
type Store struct {
	mu     sync.Mutex
	nextID int64
	clock  time.Time

	users    map[int64]*models.User
	projetos map[int64]*models.Projeto
	tasks    map[int64]*models.Task
	comments map[int64]*models.Comment
	files    map[int64]*models.File
}

func New() *Store {
	return &Store{
		clock:    time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		users:    map[int64]*models.User{},
		projetos: map[int64]*models.Projeto{},
		tasks:    map[int64]*models.Task{},
		comments: map[int64]*models.Comment{},
		files:    map[int64]*models.File{},
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *Store) Users() repositories.UserRepository       { return userRepo{s} }
func (s *Store) Projetos() repositories.ProjetoRepository { return projetoRepo{s} }
func (s *Store) Tasks() repositories.TaskRepository       { return taskRepo{s} }
func (s *Store) Comments() repositories.CommentRepository { return commentRepo{s} }
func (s *Store) Files() repositories.FileRepository       { return fileRepo{s} }

// SeedUser inserts a user directly, bypassing password hashing.
func (s *Store) SeedUser(name, role string) *models.User {
	u := &models.User{Name: name, Email: strings.ToLower(name) + "@example.com", Role: role, PasswordHash: "x"}
	_ = userRepo{s}.Create(context.Background(), u)
	return u
}

func (s *Store) SeedProjeto(title string) *models.Projeto {
	p := &models.Projeto{Title: title}
	_ = projetoRepo{s}.Create(context.Background(), p)
	return p
}

// CommentCount reports how many comments exist for the task.
func (s *Store) CommentCount(taskID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.TaskID == taskID {
			n++
		}
	}
	return n
}

// ---- users

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.ID = r.s.id()
	u.CreatedAt = r.s.tick()
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) ListRefs(_ context.Context) ([]models.UserRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := []models.UserRef{}
	for _, u := range r.s.users {
		res = append(res, u.Ref())
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r userRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.users[id]
	return ok, nil
}

// ---- projetos

type projetoRepo struct{ s *Store }

func (r projetoRepo) Create(_ context.Context, p *models.Projeto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = r.s.id()
	p.CreatedAt = r.s.tick()
	cp := *p
	r.s.projetos[p.ID] = &cp
	return nil
}

func (r projetoRepo) GetByID(_ context.Context, id int64) (*models.Projeto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.projetos[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r projetoRepo) List(_ context.Context) ([]models.Projeto, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res := []models.Projeto{}
	for _, p := range r.s.projetos {
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (r projetoRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.projetos, id)
	for _, t := range r.s.tasks {
		if t.ProjetoID != nil && *t.ProjetoID == id {
			t.ProjetoID = nil
		}
	}
	for _, f := range r.s.files {
		if f.ProjetoID != nil && *f.ProjetoID == id {
			f.ProjetoID = nil
		}
	}
	return nil
}

func (r projetoRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.projetos[id]
	return ok, nil
}
