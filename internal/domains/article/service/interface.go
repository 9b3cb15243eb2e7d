package service

import (
	"context"

	"article-backend/internal/domains/article/model"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_service.go -package=mocks

// Service is the article lifecycle. callerID is the id of the authenticated principal.
type Service interface {
	Create(ctx context.Context, callerID int64, req model.CreateArticleRequest) (*model.ArticleView, error)
	FindAll(ctx context.Context) ([]model.ArticleView, error)
	FindOne(ctx context.Context, id int64) (*model.ArticleView, error)
	Replace(ctx context.Context, callerID, id int64, req model.ReplaceArticleRequest) (*model.ArticleView, error)
	Update(ctx context.Context, callerID, id int64, req model.UpdateArticleRequest) (*model.ArticleView, error)
	Remove(ctx context.Context, id int64) (*model.ArticleView, error)
}
