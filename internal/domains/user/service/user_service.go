package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"article-backend/internal/domains/user/model"
	"article-backend/internal/domains/user/repository"
	"article-backend/pkg/cache"
)

// Options tunes password hashing and the failed-login lockout
type Options struct {
	BcryptCost      int
	MaxFailedLogins int
	LockoutDuration time.Duration
	// Alerts is optional; lockouts are only logged without it
	Alerts AlertPublisher
}

type userService struct {
	repo    repository.UserRepository
	tokens  TokenIssuer
	lockout *loginLockout
	cost    int
}

func NewUserService(repo repository.UserRepository, c cache.Cache, tokens TokenIssuer, opts Options) UserService {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = 12
	}
	return &userService{
		repo:    repo,
		tokens:  tokens,
		lockout: newLoginLockout(c, opts.Alerts, opts.MaxFailedLogins, opts.LockoutDuration),
		cost:    cost,
	}
}

// Register creates a non-admin account
func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (*model.UserView, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			return nil, model.NewUsernameTaken(req.Username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Info().Int64("user_id", u.ID).Str("username", u.Username).Msg("User registered")
	return u.ToView(), nil
}

// Login checks the lockout, then the password, and issues an access token
func (s *userService) Login(ctx context.Context, req model.LoginRequest) (*model.TokenInfo, error) {
	if s.lockout.isLocked(ctx, req.Username) {
		return nil, model.NewLoginLocked()
	}

	u, err := s.repo.FindByUsername(ctx, req.Username)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.NewUserNotFound(req.Username)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		if s.lockout.recordFailure(ctx, u) {
			return nil, model.NewLoginLocked()
		}
		return nil, model.NewInvalidCredentials()
	}

	s.lockout.reset(ctx, req.Username)

	token, err := s.tokens.GenerateAccessToken(u.ID, u.Username, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	log.Info().Int64("user_id", u.ID).Msg("User logged in")
	return &model.TokenInfo{AccessToken: token}, nil
}

func (s *userService) Profile(ctx context.Context, userID int64) (*model.UserView, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.NewUserIDNotFound(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u.ToView(), nil
}

func (s *userService) List(ctx context.Context) ([]model.UserView, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	views := make([]model.UserView, 0, len(users))
	for i := range users {
		views = append(views, *users[i].ToView())
	}
	return views, nil
}

func (s *userService) SetAdmin(ctx context.Context, id int64, isAdmin bool) (*model.UserView, error) {
	u, err := s.repo.SetAdmin(ctx, id, isAdmin)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.NewUserIDNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("set admin: %w", err)
	}

	log.Info().Int64("user_id", id).Bool("is_admin", isAdmin).Msg("User admin flag changed")
	return u.ToView(), nil
}

func (s *userService) Delete(ctx context.Context, id int64) (*model.UserView, error) {
	u, err := s.repo.Delete(ctx, id)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.NewUserIDNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}

	log.Info().Int64("user_id", id).Msg("User deleted")
	return u.ToView(), nil
}
