package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name       string
		from       AppointmentStatus
		transition Transition
		allowed    bool
	}{
		{"confirm from scheduled", StatusScheduled, TransitionConfirm, true},
		{"confirm from confirmed", StatusConfirmed, TransitionConfirm, false},
		{"complete from confirmed", StatusConfirmed, TransitionComplete, true},
		{"complete from scheduled", StatusScheduled, TransitionComplete, false},
		{"cancel from scheduled", StatusScheduled, TransitionCancel, true},
		{"cancel from confirmed", StatusConfirmed, TransitionCancel, true},
		{"cancel from completed", StatusCompleted, TransitionCancel, false},
		{"cancel from cancelled", StatusCancelled, TransitionCancel, false},
		{"no-show from scheduled", StatusScheduled, TransitionMarkNoShow, true},
		{"no-show from confirmed", StatusConfirmed, TransitionMarkNoShow, true},
		{"no-show from no_show", StatusNoShow, TransitionMarkNoShow, false},
		{"reschedule from scheduled", StatusScheduled, TransitionReschedule, true},
		{"reschedule from confirmed", StatusConfirmed, TransitionReschedule, true},
		{"reschedule from completed", StatusCompleted, TransitionReschedule, false},
		{"reschedule from cancelled", StatusCancelled, TransitionReschedule, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.transition))
		})
	}
}

func TestRoleAllowed(t *testing.T) {
	tests := []struct {
		name       string
		transition Transition
		role       Role
		allowed    bool
	}{
		{"provider confirms", TransitionConfirm, RoleProvider, true},
		{"student cannot confirm", TransitionConfirm, RoleStudent, false},
		{"provider completes", TransitionComplete, RoleProvider, true},
		{"student cannot complete", TransitionComplete, RoleStudent, false},
		{"provider marks no-show", TransitionMarkNoShow, RoleProvider, true},
		{"student cannot mark no-show", TransitionMarkNoShow, RoleStudent, false},
		{"student cancels", TransitionCancel, RoleStudent, true},
		{"provider cancels", TransitionCancel, RoleProvider, true},
		{"student reschedules", TransitionReschedule, RoleStudent, true},
		{"provider reschedules", TransitionReschedule, RoleProvider, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, RoleAllowed(tt.transition, tt.role))
		})
	}
}

func TestTransitionTarget(t *testing.T) {
	assert.Equal(t, StatusConfirmed, TransitionTarget(TransitionConfirm))
	assert.Equal(t, StatusCompleted, TransitionTarget(TransitionComplete))
	assert.Equal(t, StatusCancelled, TransitionTarget(TransitionCancel))
	assert.Equal(t, StatusNoShow, TransitionTarget(TransitionMarkNoShow))

	// Reschedule сохраняет текущий статус и не имеет целевого
	assert.Equal(t, AppointmentStatus(""), TransitionTarget(TransitionReschedule))
}

func TestTransitionFromStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]AppointmentStatus{StatusScheduled},
		TransitionFromStatuses(TransitionConfirm))
	assert.ElementsMatch(t,
		[]AppointmentStatus{StatusScheduled, StatusConfirmed},
		TransitionFromStatuses(TransitionCancel))
}

func TestAppointmentIsTerminal(t *testing.T) {
	for _, status := range []AppointmentStatus{StatusCancelled, StatusCompleted, StatusNoShow} {
		a := &Appointment{Status: status}
		assert.True(t, a.IsTerminal(), "status %s must be terminal", status)
	}
	for _, status := range []AppointmentStatus{StatusScheduled, StatusConfirmed} {
		a := &Appointment{Status: status}
		assert.False(t, a.IsTerminal(), "status %s must not be terminal", status)
	}
}
