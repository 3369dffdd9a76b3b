package book_appointment

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	bookAppointment "github.com/campuscare/PSC-SchedulingService/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	ProviderID      int64   `json:"providerId"`
	StartAt         string  `json:"startAt"` // RFC 3339
	DurationMinutes int     `json:"durationMinutes"`
	LocationKind    string  `json:"locationKind"`
	MeetingLink     *string `json:"meetingLink,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case (с парсингом времени)
func (r *BookAppointmentRequest) ToUseCaseRequest(actor domain.Actor) (*bookAppointment.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		StudentID:       actor.UserID,
		ProviderID:      r.ProviderID,
		StartAt:         startAt,
		DurationMinutes: r.DurationMinutes,
		LocationKind:    r.LocationKind,
		MeetingLink:     r.MeetingLink,
		Notes:           r.Notes,
	}, nil
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64     `json:"id"`
	StudentID       int64     `json:"studentId"`
	ProviderID      int64     `json:"providerId"`
	StartAt         time.Time `json:"startAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	LocationKind    string    `json:"locationKind"`
	MeetingLink     *string   `json:"meetingLink,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ConflictResponse HTTP response model для занятого слота
type ConflictResponse struct {
	Error               string    `json:"error"`
	ConflictingStartAt  time.Time `json:"conflictingStartAt"`
	ConflictingDuration int       `json:"conflictingDurationMinutes"`
}

// NewConflictResponse собирает ответ из доменной ошибки конфликта
func NewConflictResponse(message string, conflict *domain.SlotConflictError) *ConflictResponse {
	return &ConflictResponse{
		Error:               message,
		ConflictingStartAt:  conflict.StartAt,
		ConflictingDuration: conflict.DurationMinutes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		StudentID:       resp.StudentID,
		ProviderID:      resp.ProviderID,
		StartAt:         resp.StartAt,
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		LocationKind:    resp.LocationKind,
		MeetingLink:     resp.MeetingLink,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
