package domain

import (
	"fmt"
	"time"
)

// SlotConflictError is returned when a booking or reschedule collides with an
// existing appointment. It carries the colliding interval so the caller can
// re-derive the slot list and resubmit.
type SlotConflictError struct {
	AppointmentID   int64
	ProviderID      int64
	StartAt         time.Time
	DurationMinutes int
}

// NewSlotConflictError builds a SlotConflictError from the colliding appointment
func NewSlotConflictError(a *Appointment) *SlotConflictError {
	return &SlotConflictError{
		AppointmentID:   a.ID,
		ProviderID:      a.ProviderID,
		StartAt:         a.StartAt,
		DurationMinutes: a.DurationMinutes,
	}
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot conflict with appointment id=%d (%s, %d minutes)",
		e.AppointmentID, e.StartAt.Format(time.RFC3339), e.DurationMinutes)
}
