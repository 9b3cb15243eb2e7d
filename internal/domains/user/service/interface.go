package service

import (
	"context"

	"article-backend/internal/domains/user/model"
	"article-backend/internal/shared"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_service.go -package=mocks

type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.UserView, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenInfo, error)
	Profile(ctx context.Context, userID int64) (*model.UserView, error)
	List(ctx context.Context) ([]model.UserView, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) (*model.UserView, error)
	Delete(ctx context.Context, id int64) (*model.UserView, error)
}

// TokenIssuer signs access tokens; *jwt.Manager implements it
type TokenIssuer interface {
	GenerateAccessToken(userID int64, username string, isAdmin bool) (string, error)
}

// AlertPublisher hands security alerts to the background worker; *queue.Client implements it
type AlertPublisher interface {
	PublishSecurityAlert(ctx context.Context, payload shared.SecurityAlertPayload) error
}
