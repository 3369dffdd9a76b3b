package domain

import "time"

// Overlaps reports whether the half-open intervals [aStart, aStart+aDur) and
// [bStart, bStart+bDur) intersect. Touching endpoints do not conflict:
// an appointment ending at 10:00 does not overlap one starting at 10:00.
func Overlaps(aStart time.Time, aDurationMinutes int, bStart time.Time, bDurationMinutes int) bool {
	aEnd := aStart.Add(time.Duration(aDurationMinutes) * time.Minute)
	bEnd := bStart.Add(time.Duration(bDurationMinutes) * time.Minute)
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FindConflict returns the first appointment that occupies provider time and
// overlaps the interval [start, start+durationMinutes), or nil if there is none.
// Appointments in cancelled or no_show status never conflict.
func FindConflict(appointments []*Appointment, start time.Time, durationMinutes int) *Appointment {
	return FindConflictExcluding(appointments, start, durationMinutes, 0)
}

// FindConflictExcluding behaves like FindConflict but skips the appointment with
// excludeID. Used by reschedule, where the moved appointment must not conflict
// with itself.
func FindConflictExcluding(appointments []*Appointment, start time.Time, durationMinutes int, excludeID int64) *Appointment {
	for _, a := range appointments {
		if excludeID != 0 && a.ID == excludeID {
			continue
		}
		if !a.OccupiesSlot() {
			continue
		}
		if Overlaps(a.StartAt, a.DurationMinutes, start, durationMinutes) {
			return a
		}
	}
	return nil
}
