package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"article-backend/internal/domains/user/model"
	"article-backend/internal/infrastructure/database/dbtest"
)

func TestIntegration_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(dbtest.StartPostgres(t))
	ctx := context.Background()

	u := &model.User{Username: "someuser01", Email: "some@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)

	byName, err := repo.FindByUsername(ctx, "someuser01")
	require.NoError(t, err)
	require.Equal(t, u.ID, byName.ID)
	require.False(t, byName.IsAdmin)

	byID, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "some@example.com", byID.Email)

	_, err = repo.FindByUsername(ctx, "nobody")
	require.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestIntegration_DuplicateUsername(t *testing.T) {
	repo := NewUserRepository(dbtest.StartPostgres(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "dupuser01", PasswordHash: "h1"}))
	err := repo.Create(ctx, &model.User{Username: "dupuser01", PasswordHash: "h2"})
	require.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestIntegration_SetAdminAndDelete(t *testing.T) {
	repo := NewUserRepository(dbtest.StartPostgres(t))
	ctx := context.Background()

	u := &model.User{Username: "promoted1", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))

	updated, err := repo.SetAdmin(ctx, u.ID, true)
	require.NoError(t, err)
	require.True(t, updated.IsAdmin)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	deleted, err := repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, deleted.ID)

	_, err = repo.Delete(ctx, u.ID)
	require.ErrorIs(t, err, model.ErrUserNotFound)
	_, err = repo.SetAdmin(ctx, u.ID, false)
	require.ErrorIs(t, err, model.ErrUserNotFound)
}
