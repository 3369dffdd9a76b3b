package confirm_appointment

import (
	"context"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	"github.com/campuscare/PSC-SchedulingService/internal/service/appointments/models"
)

type AppointmentService interface {
	Confirm(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
