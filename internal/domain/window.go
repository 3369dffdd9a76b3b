package domain

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/pkg/types"
)

// AvailabilityWindow represents a recurring weekly interval during which a provider
// is bookable. Windows are soft-disabled via the Active flag, never hard deleted,
// so appointments booked inside a window keep a valid reference to its period.
type AvailabilityWindow struct {
	ID         int64
	ProviderID int64
	Weekday    time.Weekday // 0 = Sunday .. 6 = Saturday
	StartTime  types.TimeString
	EndTime    types.TimeString
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Contains reports whether a slot of durationMinutes starting at start
// fits entirely inside the window
func (w *AvailabilityWindow) Contains(start types.TimeString, durationMinutes int) bool {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return false
	}
	return !start.IsBefore(w.StartTime) && !end.IsAfter(w.EndTime)
}

// OverlapsWindow reports whether two wall-clock intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries do not overlap.
func OverlapsWindow(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
