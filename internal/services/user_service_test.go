package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construtora/internal/authz"
	"construtora/internal/models"
	"construtora/internal/repositories/repotest"
)

func TestUserService(t *testing.T) {
	ctx := context.Background()
	store := repotest.New()
	svc := NewUserService(store.Users())

	u := &models.User{Name: " Maria ", Email: "Maria@Construtora.com.br"}
	require.NoError(t, svc.CreateUserWithPassword(ctx, u, "segredo1"))
	assert.Equal(t, "Maria", u.Name)
	assert.Equal(t, "maria@construtora.com.br", u.Email)
	assert.Equal(t, authz.RoleUser, u.Role)
	assert.NotEqual(t, "segredo1", u.PasswordHash)

	t.Run("authenticate", func(t *testing.T) {
		got, err := svc.Authenticate(ctx, "maria@construtora.com.br", "segredo1")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)

		_, err = svc.Authenticate(ctx, "maria@construtora.com.br", "errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = svc.Authenticate(ctx, "ninguem@construtora.com.br", "segredo1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("create validation", func(t *testing.T) {
		err := svc.CreateUserWithPassword(ctx, &models.User{Name: "Outra", Email: "maria@construtora.com.br"}, "segredo2")
		assert.ErrorIs(t, err, ErrEmailTaken)

		err = svc.CreateUserWithPassword(ctx, &models.User{Name: "Curta", Email: "curta@x.com"}, "123")
		assert.ErrorIs(t, err, ErrValidation)

		err = svc.CreateUserWithPassword(ctx, &models.User{Name: "Chefe", Email: "chefe@x.com", Role: "OWNER"}, "segredo3")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("lookups", func(t *testing.T) {
		got, err := svc.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Maria", got.Name)

		_, err = svc.GetUserByID(ctx, 404)
		assert.ErrorIs(t, err, ErrUserNotFound)

		refs, err := svc.ListRefs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.UserRef{{ID: u.ID, Name: "Maria"}}, refs)
	})
}
