package set_window

import (
	"context"

	"github.com/campuscare/PSC-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetWindow(ctx context.Context, req *models.SetWindowRequest) (*models.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
