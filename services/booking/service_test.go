package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	appointmentRepo "gobarber/database/repository/appointment"
	userRepo "gobarber/database/repository/user"
	"gobarber/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return userRepo.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) GetProvider(ctx context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || !u.Provider {
		return nil, userRepo.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ListProviders(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.Provider {
			out = append(out, *u)
		}
	}
	return out, nil
}

// fakeAppointmentRepo is an in-memory AppointmentRepository enforcing the
// same slot uniqueness as the Mongo partial index.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[string]*models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[string]*models.Appointment)}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, a *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.appointments {
		if existing.ProviderID == a.ProviderID && existing.Date.Equal(a.Date) &&
			existing.Status == models.AppointmentScheduled {
			return appointmentRepo.ErrSlotTaken
		}
	}
	a.Status = models.AppointmentScheduled
	copied := *a
	r.appointments[a.ID] = &copied
	return nil
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAppointmentRepo) Cancel(ctx context.Context, id string, canceledAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	a.Status = models.AppointmentCanceled
	a.CanceledAt = &canceledAt
	return nil
}

func (r *fakeAppointmentRepo) ExistsScheduled(ctx context.Context, providerID string, slot time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.ProviderID == providerID && a.Date.Equal(slot) && a.Status == models.AppointmentScheduled {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppointmentRepo) ListScheduledForUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.UserID == userID && a.Status == models.AppointmentScheduled {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListForProviderBetween(ctx context.Context, providerID string, from, to time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, a := range r.appointments {
		if a.ProviderID == providerID && a.Status == models.AppointmentScheduled &&
			!a.Date.Before(from) && a.Date.Before(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

// fakeNotifier records notifications instead of delivering them.
type fakeNotifier struct {
	notified []struct{ UserID, Content string }
	err      error
}

func (n *fakeNotifier) Notify(ctx context.Context, userID, content string) error {
	if n.err != nil {
		return n.err
	}
	n.notified = append(n.notified, struct{ UserID, Content string }{userID, content})
	return nil
}

// fakeMailQueue records enqueued cancellation emails.
type fakeMailQueue struct {
	enqueued []string
	err      error
}

func (q *fakeMailQueue) EnqueueCancellationEmail(ctx context.Context, appointmentID string) error {
	if q.err != nil {
		return q.err
	}
	q.enqueued = append(q.enqueued, appointmentID)
	return nil
}

func newTestService(now time.Time) (*DefaultAppointmentService, *fakeAppointmentRepo, *fakeNotifier, *fakeMailQueue) {
	users := newFakeUserRepo(
		&models.User{ID: "prov", Name: "Cecilia", Email: "cecilia@gobarber.com", Provider: true},
		&models.User{ID: "user-u", Name: "Ursula", Email: "ursula@example.com"},
		&models.User{ID: "user-v", Name: "Vicente", Email: "vicente@example.com"},
	)
	appointments := newFakeAppointmentRepo()
	notifier := &fakeNotifier{}
	mail := &fakeMailQueue{}

	svc := &DefaultAppointmentService{
		Users:        users,
		Appointments: appointments,
		Notifier:     notifier,
		Mailer:       mail,
		Policy:       NewPolicy(2 * time.Hour),
		Now:          func() time.Time { return now },
	}
	return svc, appointments, notifier, mail
}

func TestBookStoresCanonicalSlotAndNotifiesProvider(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, _, notifier, _ := newTestService(now)

	appointment, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 10, 14, 37, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), appointment.Date)
	assert.Equal(t, models.AppointmentScheduled, appointment.Status)

	require.Len(t, notifier.notified, 1)
	assert.Equal(t, "prov", notifier.notified[0].UserID)
	assert.Equal(t, "Novo agendamento de Ursula para dia 10 de junho às 14:00h", notifier.notified[0].Content)
}

func TestBookRejectsNonProvider(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(now)

	_, err := svc.Book(context.Background(), "user-u", "user-v",
		time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC))
	assert.Equal(t, CodeInvalidProvider, policyCode(t, err))
}

func TestBookSurfacesInsertRaceAsSlotUnavailable(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, appointments, _, _ := newTestService(now)

	// Seed the slot behind the pre-check's back, as a concurrent booking
	// that committed first would.
	raced := &models.Appointment{
		ID:         "raced",
		ProviderID: "prov",
		UserID:     "user-v",
		Date:       time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC),
	}
	require.NoError(t, appointments.Create(context.Background(), raced))

	svc.Appointments = &racingRepo{fakeAppointmentRepo: appointments}

	_, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 10, 14, 10, 0, 0, time.UTC))
	assert.Equal(t, CodeSlotUnavailable, policyCode(t, err))
}

// racingRepo reports the slot as free so the insert itself collides.
type racingRepo struct {
	*fakeAppointmentRepo
}

func (r *racingRepo) ExistsScheduled(ctx context.Context, providerID string, slot time.Time) (bool, error) {
	return false, nil
}

func TestBookSucceedsWhenNotificationFails(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, _, notifier, _ := newTestService(now)
	notifier.err = errors.New("notification store down")

	appointment, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.NotNil(t, appointment)
}

func TestCancelSetsCanceledAtAndEnqueuesMail(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, _, _, mail := newTestService(now)

	appointment, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	canceled, err := svc.Cancel(context.Background(), "user-u", appointment.ID)
	require.NoError(t, err)

	assert.Equal(t, models.AppointmentCanceled, canceled.Status)
	require.NotNil(t, canceled.CanceledAt)
	assert.Equal(t, now, *canceled.CanceledAt)

	assert.Equal(t, []string{appointment.ID}, mail.enqueued)
}

func TestCancelSucceedsWhenMailQueueFails(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, _, _, mail := newTestService(now)
	mail.err = errors.New("redis down")

	appointment, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	canceled, err := svc.Cancel(context.Background(), "user-u", appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentCanceled, canceled.Status)
}

func TestCancelByNonOwnerRejected(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(now)

	appointment, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), "user-v", appointment.ID)
	assert.Equal(t, CodeUnauthorized, policyCode(t, err))

	// The provider cannot cancel either.
	_, err = svc.Cancel(context.Background(), "prov", appointment.ID)
	assert.Equal(t, CodeUnauthorized, policyCode(t, err))
}

func TestCancelMissingAppointment(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(now)

	_, err := svc.Cancel(context.Background(), "user-u", "missing")
	assert.ErrorIs(t, err, appointmentRepo.ErrNotFound)
}

// Full walk through the booking lifecycle: book, collide, cancel just
// outside the cutoff, rebook the freed slot.
func TestBookingLifecycleScenario(t *testing.T) {
	svc, _, _, _ := newTestService(time.Time{})

	setNow := func(ts time.Time) { svc.Now = func() time.Time { return ts } }
	morning := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	// U books 14:37 → slot 14:00.
	setNow(morning)
	appointment, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 10, 14, 37, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC), appointment.Date)

	// V collides in the same hour.
	_, err = svc.Book(context.Background(), "user-v", "prov",
		time.Date(2025, 6, 10, 14, 5, 0, 0, time.UTC))
	assert.Equal(t, CodeSlotUnavailable, policyCode(t, err))

	// The 2h cutoff for a 14:00 slot is 12:00, so 12:01 is too late.
	setNow(time.Date(2025, 6, 10, 12, 1, 0, 0, time.UTC))
	_, err = svc.Cancel(context.Background(), "user-u", appointment.ID)
	assert.Equal(t, CodeCancelTooLate, policyCode(t, err))

	setNow(time.Date(2025, 6, 10, 11, 59, 0, 0, time.UTC))
	_, err = svc.Cancel(context.Background(), "user-u", appointment.ID)
	require.NoError(t, err)

	// The freed slot is bookable again.
	_, err = svc.Book(context.Background(), "user-v", "prov",
		time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)
}

func TestListForUserReturnsOnlyScheduled(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(now)

	kept, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	dropped, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), "user-u", dropped.ID)
	require.NoError(t, err)

	views, err := svc.ListForUser(context.Background(), "user-u")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, kept.ID, views[0].ID)
	assert.Equal(t, "Cecilia", views[0].Provider.Name)
}

func TestAvailableHoursGrid(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	svc, _, _, _ := newTestService(now)

	_, err := svc.Book(context.Background(), "user-u", "prov",
		time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	grid, err := svc.AvailableHours(context.Background(), "prov", now)
	require.NoError(t, err)
	require.Len(t, grid, 12)

	byHour := make(map[string]AvailableHour, len(grid))
	for _, h := range grid {
		byHour[h.Time] = h
	}

	assert.False(t, byHour["08:00"].Available, "already elapsed")
	assert.False(t, byHour["09:00"].Available, "in progress")
	assert.True(t, byHour["10:00"].Available)
	assert.False(t, byHour["14:00"].Available, "booked")
	assert.True(t, byHour["19:00"].Available)
}
