package booking

import (
	"context"
	"time"

	"gobarber/models"
)

// DefaultCancelCutoff is how long before the slot a cancellation is still
// accepted when no explicit cutoff is configured.
const DefaultCancelCutoff = 2 * time.Hour

// ProviderLookup reports whether the given user ID belongs to a provider.
type ProviderLookup func(ctx context.Context, providerID string) (bool, error)

// SlotLookup reports whether a scheduled appointment already occupies the
// exact provider+slot pair.
type SlotLookup func(ctx context.Context, providerID string, slot time.Time) (bool, error)

// Decision is the accepted outcome of a policy evaluation. Rejections are
// returned as *PolicyError instead.
type Decision struct {
	Slot       time.Time
	ProviderID string
	UserID     string
	CanceledAt time.Time
}

// Policy holds the booking rules. It is pure decision logic: the current
// time is always threaded in by the caller, and persistence is reached only
// through the injected lookups.
type Policy struct {
	CancelCutoff time.Duration
}

// NewPolicy builds a Policy, falling back to DefaultCancelCutoff when the
// given cutoff is not positive.
func NewPolicy(cancelCutoff time.Duration) Policy {
	if cancelCutoff <= 0 {
		cancelCutoff = DefaultCancelCutoff
	}
	return Policy{CancelCutoff: cancelCutoff}
}

// Slot canonicalizes a requested timestamp to the start of its wall-clock
// hour. Two requests within the same hour map to the same slot.
func Slot(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// EvaluateBooking decides whether requesterID may book providerID at the
// requested time, as observed at now.
//
// The slot lookup is a pre-check only. Two concurrent requests can both pass
// it; the persistence layer's unique index settles that race, and the caller
// must treat its violation as ErrSlotUnavailable.
func (p Policy) EvaluateBooking(
	ctx context.Context,
	providerID, requesterID string,
	requested, now time.Time,
	isProvider ProviderLookup,
	slotTaken SlotLookup,
) (*Decision, error) {
	ok, err := isProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidProvider
	}

	slot := Slot(requested)

	// A slot that starts exactly now is still bookable.
	if slot.Before(now) {
		return nil, ErrPastDate
	}

	taken, err := slotTaken(ctx, providerID, slot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotUnavailable
	}

	return &Decision{
		Slot:       slot,
		ProviderID: providerID,
		UserID:     requesterID,
	}, nil
}

// EvaluateCancellation decides whether requesterID may cancel the given
// appointment at now. Only the user who booked may cancel, and only up to
// CancelCutoff before the slot.
//
// An already-canceled appointment is deliberately not special-cased: it runs
// through the same ownership and cutoff checks.
func (p Policy) EvaluateCancellation(
	appointment *models.Appointment,
	requesterID string,
	now time.Time,
) (*Decision, error) {
	if appointment.UserID != requesterID {
		return nil, ErrUnauthorized
	}

	if appointment.Date.Add(-p.CancelCutoff).Before(now) {
		return nil, errCancelTooLate(p.CancelCutoff)
	}

	return &Decision{
		Slot:       appointment.Date,
		ProviderID: appointment.ProviderID,
		UserID:     appointment.UserID,
		CanceledAt: now,
	}, nil
}
