package model

import (
	"errors"
	"fmt"

	"article-backend/internal/shared/apperror"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

func NewUserNotFound(username string) *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, fmt.Sprintf("User %s not found", username), ErrUserNotFound)
}

func NewUserIDNotFound(id int64) *apperror.Error {
	return apperror.Wrap(apperror.KindNotFound, fmt.Sprintf("User %d not found", id), ErrUserNotFound)
}

func NewUsernameTaken(username string) *apperror.Error {
	return apperror.Wrap(apperror.KindConflict, fmt.Sprintf("User %s already exists", username), ErrUsernameTaken)
}

func NewInvalidCredentials() *apperror.Error {
	return apperror.Unauthorized("Unauthorized")
}

func NewLoginLocked() *apperror.Error {
	return apperror.TooManyRequests("Too many failed login attempts, try again later")
}
