package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"article-backend/internal/domains/article/model"
	"article-backend/pkg/database"
)

const articleColumns = `id, name, description, price, version, created_at, updated_at, created_by_id, updated_by_id`

type postgresRepository struct {
	db database.DBTX
}

func NewPostgresRepository(db database.DBTX) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) WithTx(tx pgx.Tx) Repository {
	return &postgresRepository{db: tx}
}

func scanArticle(row pgx.Row, a *model.Article) error {
	return row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Price, &a.Version,
		&a.CreatedAt, &a.UpdatedAt, &a.CreatedByID, &a.UpdatedByID,
	)
}

// isNumericOverflow reports a value the NUMERIC(10, 2) price column cannot hold
func isNumericOverflow(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.NumericValueOutOfRange
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM article WHERE id = $1`

	var a model.Article
	err := scanArticle(r.db.QueryRow(ctx, query, id), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}

	return &a, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM article ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := make([]model.Article, 0)
	for rows.Next() {
		var a model.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}

	return articles, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM article`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return n, nil
}

func (r *postgresRepository) Insert(ctx context.Context, a *model.Article) error {
	query := `
		INSERT INTO article (name, description, price, version, created_by_id, updated_by_id)
		VALUES ($1, $2, $3, 1, $4, $5)
		RETURNING ` + articleColumns

	err := scanArticle(r.db.QueryRow(ctx, query,
		a.Name, a.Description, a.Price, a.CreatedByID, a.UpdatedByID,
	), a)
	if isNumericOverflow(err) {
		return model.ErrPriceOutOfRange
	}
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}

	return nil
}

// Save - compare-and-swap on version
func (r *postgresRepository) Save(ctx context.Context, a *model.Article, expectedVersion int) error {
	query := `
		UPDATE article
		SET name = $1, description = $2, price = $3, updated_by_id = $4,
		    version = version + 1, updated_at = NOW()
		WHERE id = $5 AND version = $6
		RETURNING ` + articleColumns

	err := scanArticle(r.db.QueryRow(ctx, query,
		a.Name, a.Description, a.Price, a.UpdatedByID,
		a.ID, expectedVersion,
	), a)
	if err == nil {
		return nil
	}
	if isNumericOverflow(err) {
		return model.ErrPriceOutOfRange
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to update article %d: %w", a.ID, err)
	}

	// no row matched: either the version moved or the row is gone
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM article WHERE id = $1)`, a.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check article %d: %w", a.ID, err)
	}
	if exists {
		return model.ErrVersionConflict
	}
	return model.ErrArticleNotFound
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) (*model.Article, error) {
	query := `DELETE FROM article WHERE id = $1 RETURNING ` + articleColumns

	var a model.Article
	err := scanArticle(r.db.QueryRow(ctx, query, id), &a)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete article %d: %w", id, err)
	}

	return &a, nil
}
