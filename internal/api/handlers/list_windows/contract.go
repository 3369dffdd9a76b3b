package list_windows

import (
	"context"

	"github.com/campuscare/PSC-SchedulingService/internal/service/availability/models"
)

type AvailabilityService interface {
	ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
