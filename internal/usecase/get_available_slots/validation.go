package get_available_slots

import (
	"fmt"
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to dates are required", ErrInvalidInput)
	}

	if startOfDay(req.To).Before(startOfDay(req.From)) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	maxRange := time.Duration(domain.MaxSlotRangeDays) * 24 * time.Hour
	if startOfDay(req.To).Sub(startOfDay(req.From)) > maxRange {
		return fmt.Errorf("%w: range must not exceed %d days", ErrRangeTooLarge, domain.MaxSlotRangeDays)
	}

	return nil
}
