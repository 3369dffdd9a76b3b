package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	apptRepo "github.com/campuscare/PSC-SchedulingService/internal/infra/storage/appointment"
	"github.com/campuscare/PSC-SchedulingService/pkg/types"
)

// Mocks

type mockAppointmentRepo struct {
	appointments map[int64]*domain.Appointment

	updateScheduleErr error
	updatedID         int64
	updatedStart      time.Time
	updatedDuration   int
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := m.appointments[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (m *mockAppointmentRepo) GetByProviderInRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range m.appointments {
		if a.ProviderID != providerID || !a.OccupiesSlot() {
			continue
		}
		if a.StartAt.Before(to) && from.Before(a.EndAt()) {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockAppointmentRepo) UpdateSchedule(ctx context.Context, id int64, startAt time.Time, durationMinutes int) error {
	if m.updateScheduleErr != nil {
		return m.updateScheduleErr
	}
	m.updatedID = id
	m.updatedStart = startAt
	m.updatedDuration = durationMinutes

	appt := m.appointments[id]
	appt.StartAt = startAt
	appt.DurationMinutes = durationMinutes
	return nil
}

type mockAvailabilityRepo struct {
	windows []*domain.AvailabilityWindow
}

func (m *mockAvailabilityRepo) ListByProviderAndWeekday(ctx context.Context, providerID int64, weekday int, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
	var result []*domain.AvailabilityWindow
	for _, w := range m.windows {
		if w.ProviderID == providerID && int(w.Weekday) == weekday && (!activeOnly || w.Active) {
			result = append(result, w)
		}
	}
	return result, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockPublisher struct {
	rescheduled []int64
}

func (m *mockPublisher) AppointmentRescheduled(ctx context.Context, appt *domain.Appointment) {
	m.rescheduled = append(m.rescheduled, appt.ID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Helpers

// 2025-03-10 - понедельник
var testMonday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func scheduledAppointment(id int64) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		StudentID:       100,
		ProviderID:      42,
		StartAt:         testMonday.Add(10 * time.Hour),
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
		LocationKind:    domain.LocationOnline,
	}
}

func newTestSetup(appointments ...*domain.Appointment) (*UseCase, *mockAppointmentRepo, *mockPublisher) {
	repo := &mockAppointmentRepo{appointments: map[int64]*domain.Appointment{}}
	for _, a := range appointments {
		repo.appointments[a.ID] = a
	}

	availRepo := &mockAvailabilityRepo{windows: []*domain.AvailabilityWindow{
		{
			ID:         1,
			ProviderID: 42,
			Weekday:    time.Monday,
			StartTime:  types.TimeString("09:00"),
			EndTime:    types.TimeString("17:00"),
			Active:     true,
		},
	}}

	publisher := &mockPublisher{}
	uc := NewUseCase(repo, availRepo, passthroughTxManager{}, publisher, nopLogger{})
	return uc, repo, publisher
}

func studentRequest(appointmentID int64) *Request {
	return &Request{
		AppointmentID:   appointmentID,
		Actor:           domain.Actor{UserID: 100, Role: domain.RoleStudent},
		NewStartAt:      testMonday.Add(14 * time.Hour),
		NewDurationMins: 60,
	}
}

// Tests

func TestExecute_MovesAppointmentInPlace(t *testing.T) {
	uc, repo, publisher := newTestSetup(scheduledAppointment(1))

	resp, err := uc.Execute(context.Background(), studentRequest(1))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, testMonday.Add(14*time.Hour), resp.StartAt)
	assert.Equal(t, 60, resp.DurationMinutes)
	// Статус не меняется при переносе
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)

	assert.Equal(t, int64(1), repo.updatedID)
	assert.Equal(t, []int64{1}, publisher.rescheduled)
}

func TestExecute_ProviderMayReschedule(t *testing.T) {
	uc, _, _ := newTestSetup(scheduledAppointment(1))

	req := studentRequest(1)
	req.Actor = domain.Actor{UserID: 42, Role: domain.RoleProvider}

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConflictLeavesOriginalUntouched(t *testing.T) {
	moved := scheduledAppointment(1)
	blocker := scheduledAppointment(2)
	blocker.StudentID = 200
	blocker.StartAt = testMonday.Add(14 * time.Hour)

	uc, repo, publisher := newTestSetup(moved, blocker)

	_, err := uc.Execute(context.Background(), studentRequest(1))

	var conflictErr *domain.SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, int64(2), conflictErr.AppointmentID)

	// Запись осталась на прежнем месте
	assert.Equal(t, int64(0), repo.updatedID)
	assert.Equal(t, testMonday.Add(10*time.Hour), repo.appointments[1].StartAt)
	assert.Empty(t, publisher.rescheduled)
}

func TestExecute_OwnIntervalIsNotAConflict(t *testing.T) {
	uc, _, _ := newTestSetup(scheduledAppointment(1))

	// Сдвиг на полчаса: новый интервал пересекается со старым интервалом
	// самой записи, это не конфликт
	req := studentRequest(1)
	req.NewStartAt = testMonday.Add(10*time.Hour + 30*time.Minute)

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := newTestSetup()

	_, err := uc.Execute(context.Background(), studentRequest(99))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_StrangerDenied(t *testing.T) {
	uc, _, _ := newTestSetup(scheduledAppointment(1))

	req := studentRequest(1)
	req.Actor = domain.Actor{UserID: 777, Role: domain.RoleStudent}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_TerminalStatusRejected(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			appt := scheduledAppointment(1)
			appt.Status = status
			uc, _, _ := newTestSetup(appt)

			_, err := uc.Execute(context.Background(), studentRequest(1))
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestExecute_OutsideAvailability(t *testing.T) {
	uc, _, _ := newTestSetup(scheduledAppointment(1))

	req := studentRequest(1)
	req.NewStartAt = testMonday.Add(20 * time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_SlotTakenMapsToStoreUnavailable(t *testing.T) {
	appt := scheduledAppointment(1)
	uc, repo, _ := newTestSetup(appt)
	repo.updateScheduleErr = apptRepo.ErrSlotTaken

	_, err := uc.Execute(context.Background(), studentRequest(1))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
