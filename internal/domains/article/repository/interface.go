package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"article-backend/internal/domains/article/model"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_repository.go -package=mocks

// Repository is the article store. It owns id assignment, timestamps and
// the version counter; writes succeed only against the expected version.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*model.Article, error)
	FindAll(ctx context.Context) ([]model.Article, error)
	Count(ctx context.Context) (int64, error)
	// Insert assigns id, version 1 and timestamps on a
	Insert(ctx context.Context, a *model.Article) error
	// Save writes a if the stored version still equals expectedVersion,
	// then bumps version and updated_at on a.
	Save(ctx context.Context, a *model.Article, expectedVersion int) error
	// Delete removes the row and returns it as it was
	Delete(ctx context.Context, id int64) (*model.Article, error)
	WithTx(tx pgx.Tx) Repository
}
