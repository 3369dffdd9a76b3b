package models

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// Request модели

// SetWindowRequest запрос на добавление окна доступности
type SetWindowRequest struct {
	Actor      domain.Actor `json:"-"`
	ProviderID int64        `json:"providerId"`
	Weekday    int          `json:"weekday"`   // 0 = воскресенье .. 6 = суббота
	StartTime  string       `json:"startTime"` // "09:00"
	EndTime    string       `json:"endTime"`   // "17:00"
}

// ListWindowsRequest запрос на получение окон провайдера
type ListWindowsRequest struct {
	ProviderID      int64 `json:"providerId"`
	IncludeInactive bool  `json:"includeInactive,omitempty"`
}

// Response модели

// WindowResponse ответ с данными окна доступности
type WindowResponse struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"providerId"`
	Weekday    int       `json:"weekday"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// WindowListResponse ответ со списком окон
type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
}

// Методы конвертации

// FromDomainWindow конвертирует domain модель в DTO
func FromDomainWindow(w *domain.AvailabilityWindow) *WindowResponse {
	if w == nil {
		return nil
	}

	return &WindowResponse{
		ID:         w.ID,
		ProviderID: w.ProviderID,
		Weekday:    int(w.Weekday),
		StartTime:  w.StartTime.String(),
		EndTime:    w.EndTime.String(),
		Active:     w.Active,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

// FromDomainWindowList конвертирует список domain моделей в DTO
func FromDomainWindowList(windows []*domain.AvailabilityWindow) *WindowListResponse {
	if windows == nil {
		return &WindowListResponse{
			Windows: []WindowResponse{},
		}
	}

	resp := &WindowListResponse{
		Windows: make([]WindowResponse, len(windows)),
	}

	for i, window := range windows {
		if windowResp := FromDomainWindow(window); windowResp != nil {
			resp.Windows[i] = *windowResp
		}
	}

	return resp
}
