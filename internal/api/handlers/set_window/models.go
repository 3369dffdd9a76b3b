package set_window

import (
	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	"github.com/campuscare/PSC-SchedulingService/internal/service/availability/models"
)

// SetWindowRequest HTTP request model
type SetWindowRequest struct {
	Weekday   int    `json:"weekday"`   // 0 = воскресенье .. 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *SetWindowRequest) ToServiceRequest(providerID int64, actor domain.Actor) *models.SetWindowRequest {
	return &models.SetWindowRequest{
		Actor:      actor,
		ProviderID: providerID,
		Weekday:    r.Weekday,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
	}
}
