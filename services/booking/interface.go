package booking

import (
	"context"
	"time"

	"gobarber/models"
)

// AppointmentService drives the booking lifecycle: it evaluates the policy,
// persists the outcome and triggers notifications.
type AppointmentService interface {
	// Book creates an appointment for userID with providerID at the
	// requested time (canonicalized to its hour slot).
	Book(ctx context.Context, userID, providerID string, requested time.Time) (*models.Appointment, error)
	// ListForUser returns the caller's non-canceled appointments, date
	// ascending, with provider details embedded.
	ListForUser(ctx context.Context, userID string) ([]models.AppointmentView, error)
	// Cancel cancels an appointment on behalf of userID and enqueues the
	// cancellation email to the provider.
	Cancel(ctx context.Context, userID, appointmentID string) (*models.Appointment, error)
	// ProviderSchedule returns the provider's own appointments for the day
	// containing the given date.
	ProviderSchedule(ctx context.Context, providerID string, day time.Time) ([]models.Appointment, error)
	// AvailableHours returns the provider's bookable hour grid for the day
	// containing the given date.
	AvailableHours(ctx context.Context, providerID string, day time.Time) ([]AvailableHour, error)
}

// Notifier stores an in-app notification for a user and pushes it
// best-effort. Implementations must isolate delivery failures from the
// booking that triggered them.
type Notifier interface {
	Notify(ctx context.Context, userID, content string) error
}

// CancellationMailer enqueues the cancellation email job for an appointment.
type CancellationMailer interface {
	EnqueueCancellationEmail(ctx context.Context, appointmentID string) error
}

// AvailableHour is one entry of a provider's daily hour grid.
type AvailableHour struct {
	Time      string    `json:"time"`
	Value     time.Time `json:"value"`
	Available bool      `json:"available"`
}
