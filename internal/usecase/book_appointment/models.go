package book_appointment

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	StudentID       int64     // ID студента (из контекста аутентификации)
	ProviderID      int64     // ID провайдера
	StartAt         time.Time // Абсолютное время начала
	DurationMinutes int       // Длительность в минутах
	LocationKind    string    // online | in_person
	MeetingLink     *string   // Ссылка на встречу (опционально)
	Notes           *string   // Заметки (опционально)
}

// Response модель ответа с созданной записью
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
