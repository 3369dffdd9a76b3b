package reschedule_appointment

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID   int64        // ID переносимой записи
	Actor           domain.Actor // Кто запрашивает перенос
	NewStartAt      time.Time    // Новое время начала
	NewDurationMins int          // Новая длительность в минутах
}

// Response модель ответа с перенесённой записью
type Response struct {
	ID              int64
	StudentID       int64
	ProviderID      int64
	StartAt         time.Time
	DurationMinutes int
	Status          string
	LocationKind    string
	MeetingLink     *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// fromDomain конвертирует доменную модель в response
func fromDomain(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		StudentID:       a.StudentID,
		ProviderID:      a.ProviderID,
		StartAt:         a.StartAt,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		LocationKind:    string(a.LocationKind),
		MeetingLink:     a.MeetingLink,
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
