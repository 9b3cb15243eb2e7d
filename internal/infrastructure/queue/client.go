package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"article-backend/internal/shared"
)

// Queue names and their worker priorities
const (
	QueueHigh    = "high"
	QueueDefault = "default"
)

var Priorities = map[string]int{
	QueueHigh:    20,
	QueueDefault: 10,
}

// Client enqueues background tasks on the Redis instance shared with the cache
type Client struct {
	client *asynq.Client
}

func RedisOpt(host, password string, db int) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: host, Password: password, DB: db}
}

func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(opt)}
}

// NewSecurityAlertTask builds the task; exposed for the worker tests
func NewSecurityAlertTask(payload shared.SecurityAlertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal security alert: %w", err)
	}
	return asynq.NewTask(shared.TypeSecurityAlert, data,
		asynq.Queue(QueueHigh),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	), nil
}

// PublishSecurityAlert enqueues a security alert for the worker
func (c *Client) PublishSecurityAlert(ctx context.Context, payload shared.SecurityAlertPayload) error {
	task, err := NewSecurityAlertTask(payload)
	if err != nil {
		return err
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue security alert: %w", err)
	}

	log.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("user_id", payload.UserID).
		Msg("Security alert enqueued")
	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
