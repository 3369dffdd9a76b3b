package book_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	"github.com/campuscare/PSC-SchedulingService/pkg/ptr"
	"github.com/campuscare/PSC-SchedulingService/pkg/types"
)

// Mocks

type mockAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments []*domain.Appointment

	createFunc func(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, appt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	created := *appt
	created.ID = m.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.appointments = append(m.appointments, &created)
	return &created, nil
}

func (m *mockAppointmentRepo) GetByProviderInRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []*domain.Appointment
	for _, a := range m.appointments {
		if a.ProviderID != providerID || !a.OccupiesSlot() {
			continue
		}
		if a.StartAt.Before(to) && from.Before(a.EndAt()) {
			result = append(result, a)
		}
	}
	return result, nil
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

// serialTxManager выполняет переданные функции строго последовательно,
// имитируя сериализуемые транзакции
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type mockPublisher struct {
	mu      sync.Mutex
	created []int64
}

func (m *mockPublisher) AppointmentCreated(ctx context.Context, appt *domain.Appointment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, appt.ID)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// Helpers

// 2025-03-10 - понедельник
var testMonday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func newTestUseCase(apptRepo *mockAppointmentRepo, availRepo *mockAvailabilityRepo, publisher *mockPublisher) *UseCase {
	return NewUseCase(apptRepo, availRepo, &serialTxManager{}, publisher, nopLogger{})
}

func mondayWindow(providerID int64, start, end string) *domain.AvailabilityWindow {
	return &domain.AvailabilityWindow{
		ID:         1,
		ProviderID: providerID,
		Weekday:    time.Monday,
		StartTime:  types.TimeString(start),
		EndTime:    types.TimeString(end),
		Active:     true,
	}
}

func validRequest() *Request {
	return &Request{
		StudentID:       100,
		ProviderID:      42,
		StartAt:         testMonday.Add(10 * time.Hour),
		DurationMinutes: 60,
		LocationKind:    "online",
		Notes:           ptr.Ptr("first session"),
	}
}

// Tests

func TestExecute_Success(t *testing.T) {
	apptRepo := &mockAppointmentRepo{}
	availRepo := &mockAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow(42, "09:00", "17:00")}}
	publisher := &mockPublisher{}
	uc := newTestUseCase(apptRepo, availRepo, publisher)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusScheduled), resp.Status)
	assert.Equal(t, int64(100), resp.StudentID)
	assert.Equal(t, int64(42), resp.ProviderID)
	assert.Equal(t, []int64{1}, publisher.created)
}

func TestExecute_OutsideAvailability(t *testing.T) {
	apptRepo := &mockAppointmentRepo{}
	availRepo := &mockAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow(42, "09:00", "17:00")}}
	publisher := &mockPublisher{}
	uc := newTestUseCase(apptRepo, availRepo, publisher)

	req := validRequest()
	req.StartAt = testMonday.Add(18 * time.Hour)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAvailability)
	assert.Empty(t, publisher.created)
}

func TestExecute_SlotCrossingWindowEnd(t *testing.T) {
	apptRepo := &mockAppointmentRepo{}
	availRepo := &mockAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow(42, "09:00", "17:00")}}
	uc := newTestUseCase(apptRepo, availRepo, &mockPublisher{})

	req := validRequest()
	req.StartAt = testMonday.Add(16*time.Hour + 30*time.Minute)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_Conflict(t *testing.T) {
	apptRepo := &mockAppointmentRepo{}
	availRepo := &mockAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow(42, "09:00", "17:00")}}
	publisher := &mockPublisher{}
	uc := newTestUseCase(apptRepo, availRepo, publisher)

	first, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Второй запрос на пересекающийся интервал
	req := validRequest()
	req.StudentID = 200
	req.StartAt = testMonday.Add(10*time.Hour + 30*time.Minute)

	_, err = uc.Execute(context.Background(), req)

	var conflictErr *domain.SlotConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, first.ID, conflictErr.AppointmentID)
	assert.Equal(t, first.StartAt, conflictErr.StartAt)
	assert.Equal(t, first.DurationMinutes, conflictErr.DurationMinutes)

	// Успешное событие только одно
	assert.Len(t, publisher.created, 1)
}

func TestExecute_TouchingSlotsDoNotConflict(t *testing.T) {
	apptRepo := &mockAppointmentRepo{}
	availRepo := &mockAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow(42, "09:00", "17:00")}}
	uc := newTestUseCase(apptRepo, availRepo, &mockPublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Вторая запись начинается ровно в момент окончания первой
	req := validRequest()
	req.StudentID = 200
	req.StartAt = testMonday.Add(11 * time.Hour)

	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConcurrentBooking(t *testing.T) {
	apptRepo := &mockAppointmentRepo{}
	availRepo := &mockAvailabilityRepo{windows: []*domain.AvailabilityWindow{mondayWindow(42, "09:00", "17:00")}}
	publisher := &mockPublisher{}
	uc := newTestUseCase(apptRepo, availRepo, publisher)

	const concurrency = 8

	var wg sync.WaitGroup
	errs := make([]error, concurrency)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.StudentID = int64(100 + i)
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var conflictErr *domain.SlotConflictError
		require.ErrorAs(t, err, &conflictErr)
		conflicted++
	}

	// Ровно одна запись фиксируется, остальные получают конфликт
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, concurrency-1, conflicted)
	assert.Len(t, apptRepo.appointments, 1)
	assert.Len(t, publisher.created, 1)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&mockAppointmentRepo{}, &mockAvailabilityRepo{}, &mockPublisher{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero student", func(r *Request) { r.StudentID = 0 }},
		{"zero provider", func(r *Request) { r.ProviderID = 0 }},
		{"zero start", func(r *Request) { r.StartAt = time.Time{} }},
		{"zero duration", func(r *Request) { r.DurationMinutes = 0 }},
		{"negative duration", func(r *Request) { r.DurationMinutes = -30 }},
		{"excessive duration", func(r *Request) { r.DurationMinutes = domain.MaxDurationMinutes + 1 }},
		{"bad location kind", func(r *Request) { r.LocationKind = "telepathy" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
