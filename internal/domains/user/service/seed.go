package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"article-backend/internal/domains/user/model"
	"article-backend/internal/domains/user/repository"
)

// SeedAccounts makes sure the "admin" and "user" accounts exist and returns the admin id
func SeedAccounts(ctx context.Context, repo repository.UserRepository, adminPassword, userPassword string, cost int) (int64, error) {
	admin, err := ensureAccount(ctx, repo, "admin", "admin@example.com", adminPassword, true, cost)
	if err != nil {
		return 0, err
	}
	if _, err := ensureAccount(ctx, repo, "user", "user@example.com", userPassword, false, cost); err != nil {
		return 0, err
	}
	return admin.ID, nil
}

func ensureAccount(ctx context.Context, repo repository.UserRepository, username, email, password string, isAdmin bool, cost int) (*model.User, error) {
	existing, err := repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("find seed user %s: %w", username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	u := &model.User{Username: username, Email: email, PasswordHash: string(hash), IsAdmin: isAdmin}
	if err := repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create seed user %s: %w", username, err)
	}

	log.Info().Str("username", username).Bool("is_admin", isAdmin).Msg("[SEED] User created")
	return u, nil
}
