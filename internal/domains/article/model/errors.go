package model

import (
	"errors"
	"fmt"

	"article-backend/internal/shared/apperror"
)

// Repository sentinels
var (
	ErrArticleNotFound = errors.New("article not found")
	ErrVersionConflict = errors.New("version conflict: article was modified by another writer")
	ErrPriceOutOfRange = errors.New("price out of range")
)

func NewArticleNotFound(id int64) *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, fmt.Sprintf("Article %d not found", id), ErrArticleNotFound)
}

func NewVersionMismatch(id int64, expected, got int) *apperror.Error {
	return apperror.Conflict(fmt.Sprintf("Article %d version mismatch: expected %d, got %d", id, expected, got))
}

func NewIDMismatch(expected, got int64) *apperror.Error {
	return apperror.Conflict(fmt.Sprintf("Article id mismatch: expected %d, got %d", expected, got))
}

// NewStaleWrite reports a compare-and-swap failure at save time
func NewStaleWrite(id int64, readVersion int) *apperror.Error {
	return apperror.Wrap(apperror.KindConflict,
		fmt.Sprintf("Article %d was modified concurrently (version %d is stale)", id, readVersion),
		ErrVersionConflict)
}

// NewPriceOutOfRange reports a price the store refused to hold
func NewPriceOutOfRange() *apperror.Error {
	e := apperror.Validation("price: out of range")
	e.Err = ErrPriceOutOfRange
	return e
}
