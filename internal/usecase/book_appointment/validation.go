package book_appointment

import (
	"fmt"
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	"github.com/campuscare/PSC-SchedulingService/pkg/types"
)

// timeLogFormat формат времени в логах
const timeLogFormat = time.RFC3339

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StudentID <= 0 {
		return fmt.Errorf("%w: studentID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	if req.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxDurationMinutes)
	}

	if !domain.IsValidLocationKind(req.LocationKind) {
		return fmt.Errorf("%w: locationKind must be online or in_person", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
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

// minutes конвертирует минуты в time.Duration
func minutes(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
