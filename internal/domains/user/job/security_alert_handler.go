package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"article-backend/internal/domains/user/model"
	"article-backend/internal/domains/user/repository"
	"article-backend/internal/shared"
)

// SecurityAlertHandler records lockout alerts raised by the login flow
type SecurityAlertHandler struct {
	userRepo repository.UserRepository
}

func NewSecurityAlertHandler(userRepo repository.UserRepository) *SecurityAlertHandler {
	return &SecurityAlertHandler{userRepo: userRepo}
}

func (h *SecurityAlertHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.SecurityAlertPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal SecurityAlert payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Int64("user_id", payload.UserID).
		Str("alert_type", string(payload.AlertType)).
		Msg("Processing security alert")

	user, err := h.userRepo.FindByID(ctx, payload.UserID)
	if errors.Is(err, model.ErrUserNotFound) {
		// account deleted since the alert was raised
		log.Warn().Int64("user_id", payload.UserID).Msg("Security alert for missing user dropped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get user info: %w", err)
	}

	log.Warn().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Str("email", user.Email).
		Bool("is_admin", user.IsAdmin).
		Str("alert_type", string(payload.AlertType)).
		Int64("attempts", payload.Attempts).
		Dur("locked_for", payload.LockedFor).
		Time("occurred_at", payload.OccurredAt).
		Msg("SECURITY ALERT: account locked after repeated failed logins")

	return nil
}
