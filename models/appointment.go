package models

import "time"

// Appointment statuses. An appointment moves from scheduled to canceled
// exactly once and is never deleted.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCanceled  = "canceled"
)

// Appointment represents a booked slot with a provider. Date is always
// truncated to the top of the hour; the pair (provider_id, date) is unique
// among scheduled appointments.
type Appointment struct {
	ID         string     `bson:"id" json:"id"`
	ProviderID string     `bson:"provider_id" json:"provider_id"`
	UserID     string     `bson:"user_id" json:"user_id"`
	Date       time.Time  `bson:"date" json:"date"`
	Status     string     `bson:"status" json:"status"`
	CanceledAt *time.Time `bson:"canceled_at,omitempty" json:"canceled_at,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
}

// Canceled reports whether the appointment has been canceled.
func (a *Appointment) Canceled() bool {
	return a.CanceledAt != nil
}

// AppointmentView is the listing shape returned to clients, with the
// provider's public details embedded.
type AppointmentView struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Provider struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url,omitempty"`
	} `json:"provider"`
}
