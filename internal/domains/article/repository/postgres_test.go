package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"article-backend/internal/domains/article/model"
	"article-backend/internal/infrastructure/database/dbtest"
)

func newArticle(name string) *model.Article {
	return &model.Article{
		Name:        name,
		Description: "description of " + name,
		Price:       decimal.RequireFromString("10.50"),
		CreatedByID: 1,
		UpdatedByID: 1,
	}
}

func TestIntegration_InsertAndFind(t *testing.T) {
	repo := NewPostgresRepository(dbtest.StartPostgres(t))
	ctx := context.Background()

	a := newArticle("first")
	require.NoError(t, repo.Insert(ctx, a))
	require.NotZero(t, a.ID)
	require.Equal(t, 1, a.Version)
	require.False(t, a.CreatedAt.IsZero())

	b := newArticle("second")
	require.NoError(t, repo.Insert(ctx, b))
	require.Greater(t, b.ID, a.ID)

	got, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "first", got.Name)
	require.True(t, decimal.RequireFromString("10.5").Equal(got.Price))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, a.ID, all[0].ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	_, err = repo.FindByID(ctx, 9999)
	require.ErrorIs(t, err, model.ErrArticleNotFound)
}

func TestIntegration_SaveIsCompareAndSwap(t *testing.T) {
	repo := NewPostgresRepository(dbtest.StartPostgres(t))
	ctx := context.Background()

	a := newArticle("cas")
	require.NoError(t, repo.Insert(ctx, a))

	a.Name = "renamed"
	a.UpdatedByID = 2
	require.NoError(t, repo.Save(ctx, a, 1))
	require.Equal(t, 2, a.Version)
	require.Equal(t, int64(1), a.CreatedByID)

	stale := *a
	stale.Name = "stale"
	require.ErrorIs(t, repo.Save(ctx, &stale, 1), model.ErrVersionConflict)

	missing := newArticle("ghost")
	missing.ID = 424242
	require.ErrorIs(t, repo.Save(ctx, missing, 1), model.ErrArticleNotFound)
}

func TestIntegration_ConcurrentSavesOnlyOneWins(t *testing.T) {
	repo := NewPostgresRepository(dbtest.StartPostgres(t))
	ctx := context.Background()

	a := newArticle("race")
	require.NoError(t, repo.Insert(ctx, a))

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cp := *a
			errs <- repo.Save(ctx, &cp, 1)
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, model.ErrVersionConflict)
			conflicts++
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, writers-1, conflicts)
}

func TestIntegration_DeleteReturnsRow(t *testing.T) {
	repo := NewPostgresRepository(dbtest.StartPostgres(t))
	ctx := context.Background()

	a := newArticle("gone")
	require.NoError(t, repo.Insert(ctx, a))

	deleted, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, a.ID, deleted.ID)
	require.Equal(t, "gone", deleted.Name)

	_, err = repo.Delete(ctx, a.ID)
	require.ErrorIs(t, err, model.ErrArticleNotFound)
}

func TestIntegration_PriceOverflowIsTyped(t *testing.T) {
	repo := NewPostgresRepository(dbtest.StartPostgres(t))
	ctx := context.Background()

	huge := newArticle("huge")
	huge.Price = decimal.RequireFromString("1000000000000")
	require.ErrorIs(t, repo.Insert(ctx, huge), model.ErrPriceOutOfRange)

	a := newArticle("fits")
	require.NoError(t, repo.Insert(ctx, a))
	a.Price = decimal.RequireFromString("100000000")
	require.ErrorIs(t, repo.Save(ctx, a, 1), model.ErrPriceOutOfRange)
}
