package domain

import "time"

// AvailableTimeSlot represents a concrete, dated candidate interval derived from a
// provider's availability window. Slots are computed on demand and never persisted:
// the list is a snapshot and must be re-derived after any booking.
type AvailableTimeSlot struct {
	ProviderID      int64
	StartAt         time.Time
	DurationMinutes int
}

// EndAt returns the exclusive end of the slot interval
func (s *AvailableTimeSlot) EndAt() time.Time {
	return s.StartAt.Add(time.Duration(s.DurationMinutes) * time.Minute)
}
