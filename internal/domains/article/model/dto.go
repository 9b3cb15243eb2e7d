package model

import (
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// ========================================
// PRICE RULES
// ========================================

// maxPrice is the first value the NUMERIC(10, 2) column cannot hold
var maxPrice = decimal.New(1, 8)

var errPriceNotNumber = errors.New("price must be a JSON number")

// priceRule keeps a price inside the column: at most 2 decimals and below 1e8 in magnitude
var priceRule = validation.By(func(value interface{}) error {
	var p decimal.Decimal
	switch v := value.(type) {
	case *decimal.Decimal:
		if v == nil {
			return nil
		}
		p = *v
	case decimal.Decimal:
		p = v
	default:
		return nil
	}

	if !p.Equal(p.Round(2)) {
		return errors.New("must have at most 2 decimal places")
	}
	if p.Abs().GreaterThanOrEqual(maxPrice) {
		return errors.New("must be less than 100000000 in magnitude")
	}
	return nil
})

// rejectQuotedPrice fails when the body carries the price as a JSON string,
// which decimal.Decimal would otherwise accept.
func rejectQuotedPrice(data []byte) error {
	var raw struct {
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw.Price) > 0 && raw.Price[0] == '"' {
		return errPriceNotNumber
	}
	return nil
}

// ========================================
// REQUEST DTOs
// ========================================

// CreateArticleRequest - POST /article
type CreateArticleRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Price, validation.NotNil.Error("is required"), priceRule),
	)
}

func (r *CreateArticleRequest) UnmarshalJSON(data []byte) error {
	if err := rejectQuotedPrice(data); err != nil {
		return err
	}
	type plain CreateArticleRequest
	return json.Unmarshal(data, (*plain)(r))
}

// ReplaceArticleRequest - PUT /article/:id
// Carries the full article plus the version the caller last read.
type ReplaceArticleRequest struct {
	ID          *int64           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Version     *int             `json:"version"`
}

func (r ReplaceArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.NotNil.Error("is required")),
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Price, validation.NotNil.Error("is required"), priceRule),
		validation.Field(&r.Version, validation.NotNil.Error("is required")),
	)
}

func (r *ReplaceArticleRequest) UnmarshalJSON(data []byte) error {
	if err := rejectQuotedPrice(data); err != nil {
		return err
	}
	type plain ReplaceArticleRequest
	return json.Unmarshal(data, (*plain)(r))
}

// UpdateArticleRequest - PATCH /article/:id
// Only non-nil fields are applied. Ownership, version and timestamps are not settable.
type UpdateArticleRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func (r UpdateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.NilOrNotEmpty),
		validation.Field(&r.Price, priceRule),
	)
}

func (r *UpdateArticleRequest) UnmarshalJSON(data []byte) error {
	if err := rejectQuotedPrice(data); err != nil {
		return err
	}
	type plain UpdateArticleRequest
	return json.Unmarshal(data, (*plain)(r))
}

// ApplyTo copies the present fields onto a
func (r UpdateArticleRequest) ApplyTo(a *Article) {
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Description != nil {
		a.Description = *r.Description
	}
	if r.Price != nil {
		a.Price = *r.Price
	}
}
