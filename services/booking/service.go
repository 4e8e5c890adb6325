package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "gobarber/database/repository/appointment"
	fileRepo "gobarber/database/repository/file"
	userRepo "gobarber/database/repository/user"
	"gobarber/models"
	"gobarber/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultAppointmentService is the production implementation.
type DefaultAppointmentService struct {
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
	Files        fileRepo.FileRepository
	Notifier     Notifier
	Mailer       CancellationMailer
	Policy       Policy

	// Now is the clock used for policy evaluation; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Book evaluates the booking policy and persists the appointment. The
// repository's unique index is the authority on slot collisions: a duplicate
// insert is reported as ErrSlotUnavailable even though the policy pre-check
// passed.
func (s *DefaultAppointmentService) Book(ctx context.Context, userID, providerID string, requested time.Time) (*models.Appointment, error) {
	decision, err := s.Policy.EvaluateBooking(ctx, providerID, userID, requested, s.now(),
		s.providerLookup(), s.slotLookup())
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		ID:         uuid.New().String(),
		ProviderID: decision.ProviderID,
		UserID:     decision.UserID,
		Date:       decision.Slot,
	}

	if err := s.Appointments.Create(ctx, appointment); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			// Lost the race for the slot.
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	s.notifyProvider(ctx, appointment)

	return appointment, nil
}

// notifyProvider stores the provider's in-app notification. Failures are
// logged and swallowed; the booking is already committed.
func (s *DefaultAppointmentService) notifyProvider(ctx context.Context, appointment *models.Appointment) {
	logger := utils.GetLogger()

	user, err := s.Users.GetByID(ctx, appointment.UserID)
	if err != nil {
		logger.Warn("booking: could not load user for notification",
			zap.String("userID", appointment.UserID), zap.Error(err))
		return
	}

	content := fmt.Sprintf("Novo agendamento de %s para %s", user.Name, utils.FormatPtBR(appointment.Date))
	if err := s.Notifier.Notify(ctx, appointment.ProviderID, content); err != nil {
		logger.Warn("booking: failed to notify provider",
			zap.String("providerID", appointment.ProviderID), zap.Error(err))
	}
}

// Cancel evaluates the cancellation policy, persists canceled_at and
// enqueues the cancellation email. A mail-queue failure never rolls back the
// cancellation.
func (s *DefaultAppointmentService) Cancel(ctx context.Context, userID, appointmentID string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	appointment, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	decision, err := s.Policy.EvaluateCancellation(appointment, userID, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.Appointments.Cancel(ctx, appointment.ID, decision.CanceledAt); err != nil {
		return nil, err
	}
	appointment.Status = models.AppointmentCanceled
	appointment.CanceledAt = &decision.CanceledAt

	if err := s.Mailer.EnqueueCancellationEmail(ctx, appointment.ID); err != nil {
		logger.Warn("booking: failed to enqueue cancellation email",
			zap.String("appointmentID", appointment.ID), zap.Error(err))
	}

	return appointment, nil
}

// ListForUser returns the caller's non-canceled appointments with provider
// details embedded.
func (s *DefaultAppointmentService) ListForUser(ctx context.Context, userID string) ([]models.AppointmentView, error) {
	appointments, err := s.Appointments.ListScheduledForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.AppointmentView, 0, len(appointments))
	for _, appointment := range appointments {
		view := models.AppointmentView{ID: appointment.ID, Date: appointment.Date}

		provider, err := s.Users.GetByID(ctx, appointment.ProviderID)
		if err != nil {
			return nil, fmt.Errorf("failed to load provider %s: %w", appointment.ProviderID, err)
		}
		view.Provider.ID = provider.ID
		view.Provider.Name = provider.Name

		if provider.AvatarID != "" && s.Files != nil {
			if avatar, err := s.Files.GetByID(ctx, provider.AvatarID); err == nil {
				view.Provider.AvatarURL = avatar.URL
			}
		}

		views = append(views, view)
	}
	return views, nil
}

// ProviderSchedule returns the provider's appointments for the day
// containing the given date.
func (s *DefaultAppointmentService) ProviderSchedule(ctx context.Context, providerID string, day time.Time) ([]models.Appointment, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)
	return s.Appointments.ListForProviderBetween(ctx, providerID, from, to)
}

// Working hours offered by every provider.
var scheduleHours = []int{8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}

// AvailableHours returns the provider's hour grid for the day containing
// the given date. An hour is available when it is still in the future and
// no scheduled appointment occupies it.
func (s *DefaultAppointmentService) AvailableHours(ctx context.Context, providerID string, day time.Time) ([]AvailableHour, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	appointments, err := s.Appointments.ListForProviderBetween(ctx, providerID, from, to)
	if err != nil {
		return nil, err
	}

	booked := make(map[int]bool, len(appointments))
	for _, appointment := range appointments {
		booked[appointment.Date.Hour()] = true
	}

	now := s.now()
	grid := make([]AvailableHour, 0, len(scheduleHours))
	for _, hour := range scheduleHours {
		slot := from.Add(time.Duration(hour) * time.Hour)
		grid = append(grid, AvailableHour{
			Time:      fmt.Sprintf("%02d:00", hour),
			Value:     slot,
			Available: !booked[hour] && slot.After(now),
		})
	}
	return grid, nil
}

func (s *DefaultAppointmentService) providerLookup() ProviderLookup {
	return func(ctx context.Context, providerID string) (bool, error) {
		_, err := s.Users.GetProvider(ctx, providerID)
		if errors.Is(err, userRepo.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	}
}

func (s *DefaultAppointmentService) slotLookup() SlotLookup {
	return func(ctx context.Context, providerID string, slot time.Time) (bool, error) {
		return s.Appointments.ExistsScheduled(ctx, providerID, slot)
	}
}
