package tasks

import (
	"context"
	"encoding/json"
	"time"

	"mindhaven/config"
	"mindhaven/models"

	"github.com/hibiken/asynq"
)

const TypeNotificationSend = "notification:send"

// NewNotificationTask packs a payload into an asynq task with a small
// retry budget. Notifications are best-effort; stale ones are dropped.
func NewNotificationTask(payload models.NotificationPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeNotificationSend, b)
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// Dispatcher enqueues background work on the task queue.
type Dispatcher struct {
	client *asynq.Client
}

// NewDispatcher connects an asynq client to the task-queue Redis DB.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskQueueDB,
		}),
	}
}

// NotifyDecision enqueues a booking-decision notification for delivery.
func (d *Dispatcher) NotifyDecision(ctx context.Context, payload models.NotificationPayload) error {
	task, opts, err := NewNotificationTask(payload)
	if err != nil {
		return err
	}
	_, err = d.client.EnqueueContext(ctx, task, opts...)
	return err
}

// Close releases the underlying queue connection.
func (d *Dispatcher) Close() error {
	return d.client.Close()
}
