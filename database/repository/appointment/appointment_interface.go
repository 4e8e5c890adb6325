package appointmentRepo

import (
	"context"
	"time"

	"gobarber/models"
)

// AppointmentRepository defines methods for appointment data access.
//
// The partial unique index on (provider_id, date) over scheduled appointments
// is the authority on slot availability: Create surfaces a collision as
// ErrSlotTaken even when the caller's availability pre-check passed.
type AppointmentRepository interface {
	// Create inserts a new appointment record.
	Create(ctx context.Context, appointment *models.Appointment) error
	// GetByID retrieves an appointment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// Cancel marks an appointment as canceled at the given instant.
	Cancel(ctx context.Context, id string, canceledAt time.Time) error
	// ExistsScheduled reports whether a scheduled (non-canceled) appointment
	// occupies the exact provider+slot pair.
	ExistsScheduled(ctx context.Context, providerID string, slot time.Time) (bool, error)
	// ListScheduledForUser retrieves a user's non-canceled appointments,
	// ordered by date ascending.
	ListScheduledForUser(ctx context.Context, userID string) ([]models.Appointment, error)
	// ListForProviderBetween retrieves a provider's non-canceled appointments
	// within [from, to), ordered by date ascending.
	ListForProviderBetween(ctx context.Context, providerID string, from, to time.Time) ([]models.Appointment, error)
}
