package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"article-backend/internal/domains/article/model"
	"article-backend/internal/domains/article/repository"
)

type articleService struct {
	repo repository.Repository
}

func NewArticleService(repo repository.Repository) Service {
	return &articleService{repo: repo}
}

// ========================================
// CREATE
// ========================================

func (s *articleService) Create(ctx context.Context, callerID int64, req model.CreateArticleRequest) (*model.ArticleView, error) {
	a := &model.Article{
		Name:        req.Name,
		Description: req.Description,
		CreatedByID: callerID,
		UpdatedByID: callerID,
	}
	if req.Price != nil {
		a.Price = *req.Price
	}

	err := s.repo.Insert(ctx, a)
	if errors.Is(err, model.ErrPriceOutOfRange) {
		return nil, model.NewPriceOutOfRange()
	}
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	log.Info().Int64("article_id", a.ID).Int64("user_id", callerID).Msg("Article created")
	return a.ToView(), nil
}

// ========================================
// READ
// ========================================

func (s *articleService) FindAll(ctx context.Context) ([]model.ArticleView, error) {
	articles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	views := make([]model.ArticleView, 0, len(articles))
	for i := range articles {
		views = append(views, *articles[i].ToView())
	}
	return views, nil
}

func (s *articleService) FindOne(ctx context.Context, id int64) (*model.ArticleView, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.ToView(), nil
}

// ========================================
// WRITE
// ========================================

// Replace checks the caller's version first, then the body id, then writes
// with a compare-and-swap on the version that was read.
func (s *articleService) Replace(ctx context.Context, callerID, id int64, req model.ReplaceArticleRequest) (*model.ArticleView, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Version == nil || existing.Version != *req.Version {
		got := 0
		if req.Version != nil {
			got = *req.Version
		}
		return nil, model.NewVersionMismatch(id, existing.Version, got)
	}
	if req.ID == nil || existing.ID != *req.ID {
		var got int64
		if req.ID != nil {
			got = *req.ID
		}
		return nil, model.NewIDMismatch(existing.ID, got)
	}

	readVersion := existing.Version
	existing.Name = req.Name
	existing.Description = req.Description
	if req.Price != nil {
		existing.Price = *req.Price
	}
	existing.UpdatedByID = callerID
	existing.ID = id

	if err := s.save(ctx, existing, readVersion); err != nil {
		return nil, err
	}
	return existing.ToView(), nil
}

// Update patches the present fields; no version is required from the caller
func (s *articleService) Update(ctx context.Context, callerID, id int64, req model.UpdateArticleRequest) (*model.ArticleView, error) {
	existing, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	readVersion := existing.Version
	req.ApplyTo(existing)
	existing.UpdatedByID = callerID
	existing.ID = id

	if err := s.save(ctx, existing, readVersion); err != nil {
		return nil, err
	}
	return existing.ToView(), nil
}

func (s *articleService) Remove(ctx context.Context, id int64) (*model.ArticleView, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if errors.Is(err, model.ErrArticleNotFound) {
		return nil, model.NewArticleNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("remove article %d: %w", id, err)
	}

	log.Info().Int64("article_id", id).Msg("Article removed")
	return deleted.ToView(), nil
}

// ========================================
// HELPERS
// ========================================

func (s *articleService) load(ctx context.Context, id int64) (*model.Article, error) {
	a, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, model.ErrArticleNotFound) {
		return nil, model.NewArticleNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}
	return a, nil
}

func (s *articleService) save(ctx context.Context, a *model.Article, readVersion int) error {
	err := s.repo.Save(ctx, a, readVersion)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrVersionConflict):
		log.Warn().Int64("article_id", a.ID).Int("version", readVersion).Msg("Article write lost a concurrent race")
		return model.NewStaleWrite(a.ID, readVersion)
	case errors.Is(err, model.ErrArticleNotFound):
		return model.NewArticleNotFound(a.ID)
	case errors.Is(err, model.ErrPriceOutOfRange):
		return model.NewPriceOutOfRange()
	default:
		return fmt.Errorf("save article %d: %w", a.ID, err)
	}
}
