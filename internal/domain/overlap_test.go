package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("failed to parse time %q: %v", value, err)
	}
	return parsed
}

func TestOverlaps(t *testing.T) {
	base := mustTime(t, "2025-03-10T10:00:00Z")

	tests := []struct {
		name     string
		aStart   time.Time
		aDur     int
		bStart   time.Time
		bDur     int
		expected bool
	}{
		{
			name:     "identical intervals overlap",
			aStart:   base,
			aDur:     60,
			bStart:   base,
			bDur:     60,
			expected: true,
		},
		{
			name:     "partial overlap at the end",
			aStart:   base,
			aDur:     60,
			bStart:   base.Add(30 * time.Minute),
			bDur:     60,
			expected: true,
		},
		{
			name:     "one interval inside the other",
			aStart:   base,
			aDur:     120,
			bStart:   base.Add(30 * time.Minute),
			bDur:     30,
			expected: true,
		},
		{
			name:     "touching endpoints do not overlap",
			aStart:   base,
			aDur:     60,
			bStart:   base.Add(60 * time.Minute),
			bDur:     60,
			expected: false,
		},
		{
			name:     "touching endpoints reversed order",
			aStart:   base.Add(60 * time.Minute),
			aDur:     60,
			bStart:   base,
			bDur:     60,
			expected: false,
		},
		{
			name:     "disjoint intervals",
			aStart:   base,
			aDur:     30,
			bStart:   base.Add(2 * time.Hour),
			bDur:     30,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Overlaps(tt.aStart, tt.aDur, tt.bStart, tt.bDur))
		})
	}
}

func TestFindConflict(t *testing.T) {
	base := mustTime(t, "2025-03-10T10:00:00Z")

	appointments := []*Appointment{
		{ID: 1, StartAt: base, DurationMinutes: 60, Status: StatusScheduled},
		{ID: 2, StartAt: base.Add(2 * time.Hour), DurationMinutes: 60, Status: StatusCancelled},
		{ID: 3, StartAt: base.Add(4 * time.Hour), DurationMinutes: 60, Status: StatusConfirmed},
	}

	t.Run("finds overlapping scheduled appointment", func(t *testing.T) {
		conflict := FindConflict(appointments, base.Add(30*time.Minute), 60)
		assert.NotNil(t, conflict)
		assert.Equal(t, int64(1), conflict.ID)
	})

	t.Run("cancelled appointment does not conflict", func(t *testing.T) {
		conflict := FindConflict(appointments, base.Add(2*time.Hour), 60)
		assert.Nil(t, conflict)
	})

	t.Run("confirmed appointment conflicts", func(t *testing.T) {
		conflict := FindConflict(appointments, base.Add(4*time.Hour), 30)
		assert.NotNil(t, conflict)
		assert.Equal(t, int64(3), conflict.ID)
	})

	t.Run("slot starting at existing end does not conflict", func(t *testing.T) {
		conflict := FindConflict(appointments, base.Add(60*time.Minute), 60)
		assert.Nil(t, conflict)
	})

	t.Run("no appointments means no conflict", func(t *testing.T) {
		conflict := FindConflict(nil, base, 60)
		assert.Nil(t, conflict)
	})
}

func TestFindConflictExcluding(t *testing.T) {
	base := mustTime(t, "2025-03-10T10:00:00Z")

	appointments := []*Appointment{
		{ID: 7, StartAt: base, DurationMinutes: 60, Status: StatusConfirmed},
	}

	t.Run("excluded appointment is skipped", func(t *testing.T) {
		conflict := FindConflictExcluding(appointments, base, 60, 7)
		assert.Nil(t, conflict)
	})

	t.Run("other appointments still conflict", func(t *testing.T) {
		conflict := FindConflictExcluding(appointments, base, 60, 99)
		assert.NotNil(t, conflict)
		assert.Equal(t, int64(7), conflict.ID)
	})
}

func TestAppointmentOccupiesSlot(t *testing.T) {
	tests := []struct {
		status   AppointmentStatus
		occupies bool
	}{
		{StatusScheduled, true},
		{StatusConfirmed, true},
		{StatusCompleted, true},
		{StatusCancelled, false},
		{StatusNoShow, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := &Appointment{Status: tt.status}
			assert.Equal(t, tt.occupies, a.OccupiesSlot())
		})
	}
}
