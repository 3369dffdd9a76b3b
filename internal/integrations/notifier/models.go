package notifier

import "time"

// Типы событий, отправляемых в NotificationService
const (
	EventAppointmentCreated     = "appointment.created"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventAppointmentCompleted   = "appointment.completed"
	EventAppointmentRescheduled = "appointment.rescheduled"
)

// Event модель события для NotificationService
type Event struct {
	EventID    string    `json:"eventId"` // UUID, дедупликация на стороне получателя
	EventType  string    `json:"eventType"`
	OccurredAt time.Time `json:"occurredAt"`

	AppointmentID   int64     `json:"appointmentId"`
	StudentID       int64     `json:"studentId"`
	ProviderID      int64     `json:"providerId"`
	StartAt         time.Time `json:"startAt"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ErrorResponse модель ошибки от NotificationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
