package reschedule_appointment

import (
	"context"
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByProviderInRange(ctx context.Context, providerID int64, from, to time.Time) ([]*domain.Appointment, error)
	UpdateSchedule(ctx context.Context, id int64, startAt time.Time, durationMinutes int) error
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	ListByProviderAndWeekday(ctx context.Context, providerID int64, weekday int, activeOnly bool) ([]*domain.AvailabilityWindow, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс отправки событий во внешний notification service
type EventPublisher interface {
	AppointmentRescheduled(ctx context.Context, appt *domain.Appointment)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
