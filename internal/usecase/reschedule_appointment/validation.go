package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	"github.com/campuscare/PSC-SchedulingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.NewStartAt.IsZero() {
		return fmt.Errorf("%w: newStartAt is required", ErrInvalidInput)
	}

	if req.NewDurationMins <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if req.NewDurationMins > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	return nil
}

// slotWithinWindows проверяет, что интервал [start, start+duration) целиком
// попадает в одно из окон (сравнение по wall-clock времени дня)
func slotWithinWindows(windows []*domain.AvailabilityWindow, start time.Time, durationMinutes int) bool {
	startOfDay := types.NewTimeString(start)
	for _, w := range windows {
		if w.Contains(startOfDay, durationMinutes) {
			return true
		}
	}
	return false
}
