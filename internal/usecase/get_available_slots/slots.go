package get_available_slots

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// generateSlots разворачивает еженедельные окна провайдера в конкретные слоты
// на диапазон дат [from, to] (обе даты включительно) и выбрасывает слоты,
// пересекающиеся с записями, занимающими время.
//
// Для каждой даты берутся активные окна её дня недели; внутри окна слоты
// генерируются с фиксированным шагом durationMinutes от начала окна.
// Слот, не помещающийся в окно целиком, не генерируется: окно короче
// durationMinutes не даёт ни одного слота, частичных слотов нет.
//
// Результат упорядочен по времени начала: даты обходятся по порядку, окна
// внутри дня отсортированы по start_time, окна одного дня не пересекаются.
//
// Функция чисто вычислительная и не имеет побочных эффектов - она никогда
// не резервирует слот сама
func generateSlots(
	providerID int64,
	windows []*domain.AvailabilityWindow,
	appointments []*domain.Appointment,
	from, to time.Time,
	durationMinutes int,
) ([]domain.AvailableTimeSlot, error) {
	// Группируем окна по дню недели, порядок внутри дня сохраняется
	byWeekday := make(map[time.Weekday][]*domain.AvailabilityWindow)
	for _, w := range windows {
		byWeekday[w.Weekday] = append(byWeekday[w.Weekday], w)
	}

	slots := make([]domain.AvailableTimeSlot, 0)

	fromDay := startOfDay(from)
	toDay := startOfDay(to)

	for date := fromDay; !date.After(toDay); date = date.AddDate(0, 0, 1) {
		for _, w := range byWeekday[date.Weekday()] {
			windowSlots, err := expandWindow(providerID, w, date, durationMinutes)
			if err != nil {
				return nil, err
			}

			for _, slot := range windowSlots {
				if domain.FindConflict(appointments, slot.StartAt, slot.DurationMinutes) != nil {
					continue
				}
				slots = append(slots, slot)
			}
		}
	}

	return slots, nil
}

// expandWindow генерирует все слоты одного окна на конкретную дату
func expandWindow(providerID int64, w *domain.AvailabilityWindow, date time.Time, durationMinutes int) ([]domain.AvailableTimeSlot, error) {
	startMinutes, err := w.StartTime.Minutes()
	if err != nil {
		return nil, err
	}

	endMinutes, err := w.EndTime.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]domain.AvailableTimeSlot, 0)

	// Шаг равен длительности слота; слот, чей конец выходит за конец окна,
	// не генерируется (точное совпадение конца слота с концом окна допустимо)
	for m := startMinutes; m+durationMinutes <= endMinutes; m += durationMinutes {
		slots = append(slots, domain.AvailableTimeSlot{
			ProviderID:      providerID,
			StartAt:         date.Add(time.Duration(m) * time.Minute),
			DurationMinutes: durationMinutes,
		})
	}

	return slots, nil
}

// startOfDay обнуляет время, оставляя только дату
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
