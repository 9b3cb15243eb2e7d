package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// price is rendered as a JSON number, not a quoted string
	decimal.MarshalJSONWithoutQuotes = true
}

// Article is one row of the article table
type Article struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedByID int64
	UpdatedByID int64
}

// ArticleView is the outbound representation
type ArticleView struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Version     int             `json:"version"`
	CreatedByID int64           `json:"createdById"`
	UpdatedByID int64           `json:"updatedById"`
}

func (a *Article) ToView() *ArticleView {
	return &ArticleView{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Price:       a.Price,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Version:     a.Version,
		CreatedByID: a.CreatedByID,
		UpdatedByID: a.UpdatedByID,
	}
}
