package reschedule_appointment

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	rescheduleAppointment "github.com/campuscare/PSC-SchedulingService/internal/usecase/reschedule_appointment"
)

// RescheduleAppointmentRequest HTTP request model
type RescheduleAppointmentRequest struct {
	NewStartAt         string `json:"newStartAt"` // RFC 3339
	NewDurationMinutes int    `json:"newDurationMinutes"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case (с парсингом времени)
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID int64, actor domain.Actor) (*rescheduleAppointment.Request, error) {
	newStartAt, err := time.Parse(time.RFC3339, r.NewStartAt)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID:   appointmentID,
		Actor:           actor,
		NewStartAt:      newStartAt,
		NewDurationMins: r.NewDurationMinutes,
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
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
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
