package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gobarber/config"
	appointmentRepo "gobarber/database/repository/appointment"
	userRepo "gobarber/database/repository/user"
	"gobarber/services/mailer"
	"gobarber/services/tasks"
	"gobarber/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// WorkerDeps are the collaborators the mail worker needs to assemble and
// send a cancellation email.
type WorkerDeps struct {
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	Mail         mailer.Mailer
}

// InitMailWorker runs the async mail worker in background.
func InitMailWorker(deps WorkerDeps) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCancellationEmail, handleCancellationEmail(deps))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[MailWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[MailWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[MailWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleCancellationEmail loads the appointment and both parties, renders
// the pt-BR cancellation message and mails the provider. A send failure is
// returned so the queue can retry; it never touches the appointment itself.
func handleCancellationEmail(deps WorkerDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.CancellationEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[MailHandler] invalid payload: %v", err)
			return err
		}

		appointment, err := deps.Appointments.GetByID(ctx, p.AppointmentID)
		if err != nil {
			log.Printf("[MailHandler] appointment %s not found: %v", p.AppointmentID, err)
			return err
		}

		provider, err := deps.Users.GetByID(ctx, appointment.ProviderID)
		if err != nil {
			log.Printf("[MailHandler] provider %s not found: %v", appointment.ProviderID, err)
			return err
		}
		client, err := deps.Users.GetByID(ctx, appointment.UserID)
		if err != nil {
			log.Printf("[MailHandler] user %s not found: %v", appointment.UserID, err)
			return err
		}

		to := fmt.Sprintf("%s <%s>", provider.Name, provider.Email)
		body := fmt.Sprintf(
			"<p>Olá, %s!</p><p>%s cancelou o agendamento marcado para %s.</p>",
			provider.Name, client.Name, utils.FormatPtBR(appointment.Date),
		)

		if err := deps.Mail.Send(to, "Agendamento cancelado", body); err != nil {
			log.Printf("[MailHandler] failed to send cancellation email for %s: %v", appointment.ID, err)
			return err
		}

		log.Printf("[MailHandler] cancellation email sent for appointment %s", appointment.ID)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMailQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[MailWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
