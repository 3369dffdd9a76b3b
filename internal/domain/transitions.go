package domain

// Transition is a named lifecycle operation on an appointment
type Transition string

const (
	TransitionConfirm    Transition = "confirm"
	TransitionComplete   Transition = "complete"
	TransitionCancel     Transition = "cancel"
	TransitionMarkNoShow Transition = "mark_no_show"
	TransitionReschedule Transition = "reschedule"
)

// transitionFromStatuses maps a transition to the statuses it may start from.
// Statuses absent here (cancelled, completed, no_show) are terminal for that transition.
var transitionFromStatuses = map[Transition][]AppointmentStatus{
	TransitionConfirm:    {StatusScheduled},
	TransitionComplete:   {StatusConfirmed},
	TransitionCancel:     {StatusScheduled, StatusConfirmed},
	TransitionMarkNoShow: {StatusScheduled, StatusConfirmed},
	TransitionReschedule: {StatusScheduled, StatusConfirmed},
}

// transitionRoles is the explicit (transition, role) permission table.
// Confirm, complete and no-show belong to the provider side; cancel and
// reschedule are available to both parties.
var transitionRoles = map[Transition]map[Role]bool{
	TransitionConfirm:    {RoleProvider: true},
	TransitionComplete:   {RoleProvider: true},
	TransitionMarkNoShow: {RoleProvider: true},
	TransitionCancel:     {RoleStudent: true, RoleProvider: true},
	TransitionReschedule: {RoleStudent: true, RoleProvider: true},
}

// transitionTarget maps a transition to the resulting status.
// Reschedule keeps the current status and is absent here.
var transitionTarget = map[Transition]AppointmentStatus{
	TransitionConfirm:    StatusConfirmed,
	TransitionComplete:   StatusCompleted,
	TransitionCancel:     StatusCancelled,
	TransitionMarkNoShow: StatusNoShow,
}

// CanTransition reports whether the transition is legal from the given status
func CanTransition(from AppointmentStatus, t Transition) bool {
	for _, s := range transitionFromStatuses[t] {
		if s == from {
			return true
		}
	}
	return false
}

// TransitionFromStatuses returns the statuses the transition may start from
func TransitionFromStatuses(t Transition) []AppointmentStatus {
	return transitionFromStatuses[t]
}

// RoleAllowed reports whether the role may request the transition
func RoleAllowed(t Transition, role Role) bool {
	return transitionRoles[t][role]
}

// TransitionTarget returns the status the transition leads to
func TransitionTarget(t Transition) AppointmentStatus {
	return transitionTarget[t]
}
