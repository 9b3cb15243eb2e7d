package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"article-backend/internal/domains/user/model"
	"article-backend/internal/domains/user/repository/mocks"
	"article-backend/internal/infrastructure/queue"
	"article-backend/internal/shared"
)

func newTask(t *testing.T, userID int64) *asynq.Task {
	t.Helper()
	task, err := queue.NewSecurityAlertTask(shared.SecurityAlertPayload{
		UserID:     userID,
		Username:   "someuser",
		AlertType:  shared.AlertLoginLocked,
		Attempts:   5,
		LockedFor:  15 * time.Minute,
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	require.Equal(t, shared.TypeSecurityAlert, task.Type())
	return task
}

func TestSecurityAlertHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("known user", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(gomock.NewController(t))
		repo.EXPECT().FindByID(gomock.Any(), int64(4)).
			Return(&model.User{ID: 4, Username: "someuser", Email: "some@example.com"}, nil)

		require.NoError(t, NewSecurityAlertHandler(repo).ProcessTask(ctx, newTask(t, 4)))
	})

	t.Run("deleted user is dropped", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(gomock.NewController(t))
		repo.EXPECT().FindByID(gomock.Any(), int64(9)).Return(nil, model.ErrUserNotFound)

		require.NoError(t, NewSecurityAlertHandler(repo).ProcessTask(ctx, newTask(t, 9)))
	})

	t.Run("store error is retried", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(gomock.NewController(t))
		repo.EXPECT().FindByID(gomock.Any(), int64(4)).Return(nil, errors.New("conn reset"))

		err := NewSecurityAlertHandler(repo).ProcessTask(ctx, newTask(t, 4))
		require.Error(t, err)
		require.NotErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("bad payload skips retry", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(gomock.NewController(t))
		task := asynq.NewTask(shared.TypeSecurityAlert, []byte("{"))

		err := NewSecurityAlertHandler(repo).ProcessTask(ctx, task)
		require.ErrorIs(t, err, asynq.SkipRetry)
	})
}
