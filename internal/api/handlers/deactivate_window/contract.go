package deactivate_window

import (
	"context"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

type AvailabilityService interface {
	DeactivateWindow(ctx context.Context, id int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
