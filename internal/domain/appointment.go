package domain

import "time"

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// LocationKind represents where the appointment takes place
type LocationKind string

const (
	LocationOnline   LocationKind = "online"
	LocationInPerson LocationKind = "in_person"
)

// IsValidLocationKind reports whether s is a known location kind
func IsValidLocationKind(s string) bool {
	return LocationKind(s) == LocationOnline || LocationKind(s) == LocationInPerson
}

// Appointment represents a booked counseling session between a student and a provider.
// Appointments are never deleted; terminal statuses keep the record for history.
type Appointment struct {
	ID              int64
	StudentID       int64
	ProviderID      int64
	StartAt         time.Time
	DurationMinutes int
	Status          AppointmentStatus
	LocationKind    LocationKind
	MeetingLink     *string
	Notes           *string

	CancelledBy        *Role
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndAt returns the exclusive end of the appointment interval
func (a *Appointment) EndAt() time.Time {
	return a.StartAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// OccupiesSlot returns true if the appointment blocks its provider's time.
// Cancelled and no-show appointments free the interval for re-booking.
func (a *Appointment) OccupiesSlot() bool {
	return a.Status == StatusScheduled ||
		a.Status == StatusConfirmed ||
		a.Status == StatusCompleted
}

// IsTerminal returns true if no further transition is permitted
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled ||
		a.Status == StatusCompleted ||
		a.Status == StatusNoShow
}

// IsParty returns true if the given user is the student or the provider of the appointment
func (a *Appointment) IsParty(userID int64) bool {
	return a.StudentID == userID || a.ProviderID == userID
}

// ProviderAppointmentsFilter фильтр для получения записей провайдера
type ProviderAppointmentsFilter struct {
	ProviderID      int64              // Обязательный параметр
	From            *time.Time         // Начало периода (опционально)
	To              *time.Time         // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeReleased bool               // Включать ли записи, не занимающие время (cancelled, no_show)
}
