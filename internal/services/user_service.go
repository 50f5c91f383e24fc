package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"construtora/internal/authz"
	"construtora/internal/models"
	"construtora/internal/repositories"
)

type UserService interface {
	CreateUserWithPassword(ctx context.Context, user *models.User, plainPassword string) error
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListRefs(ctx context.Context) ([]models.UserRef, error)
}

type userService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) CreateUserWithPassword(ctx context.Context, user *models.User, plainPassword string) error {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))
	if user.Name == "" {
		return validationf("name is required")
	}
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return validationf("a valid email is required")
	}
	if len(plainPassword) < 6 {
		return validationf("password must have at least 6 characters")
	}
	if user.Role == "" {
		user.Role = authz.RoleUser
	}
	if !authz.IsValidRole(user.Role) {
		return validationf("role must be ADMIN or USER")
	}

	existing, err := s.repo.GetByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.repo.Create(ctx, user)
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) ListRefs(ctx context.Context) ([]models.UserRef, error) {
	return s.repo.ListRefs(ctx)
}
