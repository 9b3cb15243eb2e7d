package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"article-backend/internal/domains/article/model"
	"article-backend/internal/domains/article/repository"
)

// SeedSampleArticle inserts the sample article owned by ownerID when the table is empty
func SeedSampleArticle(ctx context.Context, repo repository.Repository, ownerID int64) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count articles: %w", err)
	}
	if n > 0 {
		return nil
	}

	a := &model.Article{
		Name:        "Sample Article",
		Description: "Example of Article Description",
		Price:       decimal.RequireFromString("10.5"),
		CreatedByID: ownerID,
		UpdatedByID: ownerID,
	}
	if err := repo.Insert(ctx, a); err != nil {
		return fmt.Errorf("insert sample article: %w", err)
	}

	log.Info().Int64("article_id", a.ID).Msg("[SEED] Sample article created")
	return nil
}
