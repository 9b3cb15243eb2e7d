package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"article-backend/internal/domains/user/model"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_repository.go -package=mocks

type UserRepository interface {
	// Create returns model.ErrUsernameTaken on a duplicate username
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id int64) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) (*model.User, error)
	Delete(ctx context.Context, id int64) (*model.User, error)
	WithTx(tx pgx.Tx) UserRepository
}
