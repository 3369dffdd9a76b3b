package appointments

import (
	"context"
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByStudentID(ctx context.Context, studentID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByProviderWithFilter(ctx context.Context, filter domain.ProviderAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, allowedFrom []domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, cancelledBy domain.Role, reason string, allowedFrom []domain.AppointmentStatus) error
}

// EventPublisher интерфейс отправки событий во внешний notification service
type EventPublisher interface {
	AppointmentCancelled(ctx context.Context, appt *domain.Appointment)
	AppointmentCompleted(ctx context.Context, appt *domain.Appointment)
}

// TimeProvider интерфейс источника текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
