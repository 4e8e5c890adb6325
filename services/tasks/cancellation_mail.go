package tasks

import (
	"context"
	"encoding/json"

	"gobarber/config"

	"github.com/hibiken/asynq"
)

const TypeCancellationEmail = "appointment:cancellation_email"

// CancellationEmailPayload carries the appointment reference consumed by
// the mail worker.
type CancellationEmailPayload struct {
	AppointmentID string `json:"appointment_id"`
}

// NewCancellationEmailTask builds the queue task for one cancellation email.
func NewCancellationEmailTask(appointmentID string) (*asynq.Task, error) {
	b, err := json.Marshal(CancellationEmailPayload{AppointmentID: appointmentID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCancellationEmail, b), nil
}

// Queue enqueues background tasks on the Redis-backed mail queue.
type Queue struct {
	client *asynq.Client
}

// NewQueue connects an enqueuer to the configured Redis instance.
func NewQueue() *Queue {
	return &Queue{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisMailQueueDB,
		}),
	}
}

// EnqueueCancellationEmail queues the cancellation email job for an
// appointment. Delivery is fire-and-forget relative to the cancellation.
func (q *Queue) EnqueueCancellationEmail(ctx context.Context, appointmentID string) error {
	task, err := NewCancellationEmailTask(appointmentID)
	if err != nil {
		return err
	}
	_, err = q.client.EnqueueContext(ctx, task)
	return err
}

// Close releases the underlying Redis connection.
func (q *Queue) Close() error {
	return q.client.Close()
}
