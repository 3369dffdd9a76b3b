package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	apptRepo "github.com/campuscare/PSC-SchedulingService/internal/infra/storage/appointment"
	"github.com/campuscare/PSC-SchedulingService/internal/service/appointments/models"
)

// Mocks

type mockRepo struct {
	appointments map[int64]*domain.Appointment

	updateStatusFunc func(ctx context.Context, id int64, status domain.AppointmentStatus, allowedFrom []domain.AppointmentStatus) error

	cancelCalls  int
	cancelledBy  domain.Role
	cancelReason string
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := m.appointments[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (m *mockRepo) GetByStudentID(ctx context.Context, studentID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range m.appointments {
		if a.StudentID != studentID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

func (m *mockRepo) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range m.appointments {
		if a.ProviderID != filter.ProviderID {
			continue
		}
		if !filter.IncludeReleased && !a.OccupiesSlot() {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, allowedFrom []domain.AppointmentStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, allowedFrom)
	}

	appt, ok := m.appointments[id]
	if !ok || !statusIn(appt.Status, allowedFrom) {
		return apptRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

func (m *mockRepo) Cancel(ctx context.Context, id int64, cancelledBy domain.Role, reason string, allowedFrom []domain.AppointmentStatus) error {
	appt, ok := m.appointments[id]
	if !ok || !statusIn(appt.Status, allowedFrom) {
		return apptRepo.ErrAppointmentNotFound
	}

	m.cancelCalls++
	m.cancelledBy = cancelledBy
	m.cancelReason = reason

	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancelledBy = &cancelledBy
	appt.CancelledAt = &now
	if reason != "" {
		appt.CancellationReason = &reason
	}
	return nil
}

func statusIn(status domain.AppointmentStatus, list []domain.AppointmentStatus) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}

type mockPublisher struct {
	cancelled []int64
	completed []int64
}

func (m *mockPublisher) AppointmentCancelled(ctx context.Context, appt *domain.Appointment) {
	m.cancelled = append(m.cancelled, appt.ID)
}

func (m *mockPublisher) AppointmentCompleted(ctx context.Context, appt *domain.Appointment) {
	m.completed = append(m.completed, appt.ID)
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Helpers

var apptStart = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

var (
	student  = domain.Actor{UserID: 100, Role: domain.RoleStudent}
	provider = domain.Actor{UserID: 42, Role: domain.RoleProvider}
)

func testAppointment(id int64, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		StudentID:       100,
		ProviderID:      42,
		StartAt:         apptStart,
		DurationMinutes: 60,
		Status:          status,
		LocationKind:    domain.LocationOnline,
	}
}

func newTestService(clock TimeProvider, appointments ...*domain.Appointment) (*Service, *mockRepo, *mockPublisher) {
	repo := &mockRepo{appointments: map[int64]*domain.Appointment{}}
	for _, a := range appointments {
		repo.appointments[a.ID] = a
	}
	publisher := &mockPublisher{}
	svc := NewService(repo, publisher, clock, 15, nopLogger{})
	return svc, repo, publisher
}

// Tests

func TestGetByID(t *testing.T) {
	svc, _, _ := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusScheduled))

	t.Run("party sees the appointment", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, student)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, domain.Actor{UserID: 777, Role: domain.RoleStudent})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing appointment", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99, student)
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("provider confirms scheduled", func(t *testing.T) {
		svc, repo, _ := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusScheduled))

		resp, err := svc.Confirm(context.Background(), 1, provider)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.appointments[1].Status)
	})

	t.Run("student may not confirm", func(t *testing.T) {
		svc, _, _ := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusScheduled))

		_, err := svc.Confirm(context.Background(), 1, student)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("another provider may not confirm", func(t *testing.T) {
		svc, _, _ := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusScheduled))

		_, err := svc.Confirm(context.Background(), 1, domain.Actor{UserID: 43, Role: domain.RoleProvider})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("confirming a completed appointment is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusCompleted))

		_, err := svc.Confirm(context.Background(), 1, provider)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestComplete(t *testing.T) {
	t.Run("provider completes confirmed", func(t *testing.T) {
		svc, _, publisher := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusConfirmed))

		resp, err := svc.Complete(context.Background(), 1, provider)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), resp.Status)
		assert.Equal(t, []int64{1}, publisher.completed)
	})

	t.Run("completing an unconfirmed appointment is rejected", func(t *testing.T) {
		svc, _, publisher := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusScheduled))

		_, err := svc.Complete(context.Background(), 1, provider)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Empty(t, publisher.completed)
	})
}

func TestMarkNoShow(t *testing.T) {
	t.Run("before grace period expires", func(t *testing.T) {
		clock := fakeClock{now: apptStart.Add(14 * time.Minute)}
		svc, _, _ := newTestService(clock, testAppointment(1, domain.StatusConfirmed))

		_, err := svc.MarkNoShow(context.Background(), 1, provider)
		assert.ErrorIs(t, err, ErrTooEarlyForNoShow)
	})

	t.Run("after grace period expires", func(t *testing.T) {
		clock := fakeClock{now: apptStart.Add(15 * time.Minute)}
		svc, _, _ := newTestService(clock, testAppointment(1, domain.StatusConfirmed))

		resp, err := svc.MarkNoShow(context.Background(), 1, provider)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusNoShow), resp.Status)
	})

	t.Run("student may not mark no-show", func(t *testing.T) {
		clock := fakeClock{now: apptStart.Add(time.Hour)}
		svc, _, _ := newTestService(clock, testAppointment(1, domain.StatusConfirmed))

		_, err := svc.MarkNoShow(context.Background(), 1, student)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestCancel(t *testing.T) {
	t.Run("student cancels with reason", func(t *testing.T) {
		svc, repo, publisher := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusScheduled))

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			Actor:              student,
			CancellationReason: "schedule clash",
		})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		require.NotNil(t, resp.CancelledBy)
		assert.Equal(t, string(domain.RoleStudent), *resp.CancelledBy)
		require.NotNil(t, resp.CancellationReason)
		assert.Equal(t, "schedule clash", *resp.CancellationReason)

		assert.Equal(t, 1, repo.cancelCalls)
		assert.Equal(t, domain.RoleStudent, repo.cancelledBy)
		assert.Equal(t, "schedule clash", repo.cancelReason)
		assert.Equal(t, []int64{1}, publisher.cancelled)
	})

	t.Run("provider cancels confirmed", func(t *testing.T) {
		svc, repo, _ := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusConfirmed))

		_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{Actor: provider})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleProvider, repo.cancelledBy)
	})

	t.Run("cancelling a terminal appointment is rejected", func(t *testing.T) {
		for _, status := range []domain.AppointmentStatus{
			domain.StatusCompleted,
			domain.StatusCancelled,
			domain.StatusNoShow,
		} {
			svc, _, publisher := newTestService(RealTimeProvider{}, testAppointment(1, status))

			_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{Actor: student})
			assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
			assert.Empty(t, publisher.cancelled)
		}
	})

	t.Run("stranger is denied", func(t *testing.T) {
		svc, _, _ := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusScheduled))

		_, err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			Actor: domain.Actor{UserID: 777, Role: domain.RoleStudent},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestConcurrentStatusChange(t *testing.T) {
	// Условное обновление затронуло 0 строк, но запись существует:
	// статус изменился между чтением и обновлением
	svc, repo, _ := newTestService(RealTimeProvider{}, testAppointment(1, domain.StatusScheduled))
	repo.updateStatusFunc = func(ctx context.Context, id int64, status domain.AppointmentStatus, allowedFrom []domain.AppointmentStatus) error {
		return apptRepo.ErrAppointmentNotFound
	}

	_, err := svc.Confirm(context.Background(), 1, provider)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGetStudentAppointments(t *testing.T) {
	scheduled := testAppointment(1, domain.StatusScheduled)
	cancelled := testAppointment(2, domain.StatusCancelled)
	svc, _, _ := newTestService(RealTimeProvider{}, scheduled, cancelled)

	t.Run("all appointments", func(t *testing.T) {
		resp, err := svc.GetStudentAppointments(context.Background(), &models.GetStudentAppointmentsRequest{StudentID: 100})
		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 2)
	})

	t.Run("filtered by status", func(t *testing.T) {
		status := "cancelled"
		resp, err := svc.GetStudentAppointments(context.Background(), &models.GetStudentAppointmentsRequest{
			StudentID: 100,
			Status:    &status,
		})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)
		assert.Equal(t, int64(2), resp.Appointments[0].ID)
	})

	t.Run("invalid status", func(t *testing.T) {
		status := "pending"
		_, err := svc.GetStudentAppointments(context.Background(), &models.GetStudentAppointmentsRequest{
			StudentID: 100,
			Status:    &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetProviderAppointments(t *testing.T) {
	scheduled := testAppointment(1, domain.StatusScheduled)
	cancelled := testAppointment(2, domain.StatusCancelled)
	svc, _, _ := newTestService(RealTimeProvider{}, scheduled, cancelled)

	t.Run("released intervals hidden by default", func(t *testing.T) {
		resp, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{ProviderID: 42})
		require.NoError(t, err)
		require.Len(t, resp.Appointments, 1)
		assert.Equal(t, int64(1), resp.Appointments[0].ID)
	})

	t.Run("released intervals included on request", func(t *testing.T) {
		resp, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
			ProviderID:      42,
			IncludeReleased: true,
		})
		require.NoError(t, err)
		assert.Len(t, resp.Appointments, 2)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		status := "bogus"
		_, err := svc.GetProviderAppointments(context.Background(), &models.GetProviderAppointmentsRequest{
			ProviderID: 42,
			Status:     &status,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
