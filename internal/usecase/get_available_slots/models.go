package get_available_slots

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID      int64     // ID провайдера
	From            time.Time // Первая дата диапазона (включительно)
	To              time.Time // Последняя дата диапазона (включительно)
	DurationMinutes int       // Длительность слота в минутах
}

// Response модель ответа со списком доступных слотов
// Список - снимок на момент запроса: после любого бронирования
// его нужно перечитать
type Response struct {
	ProviderID      int64
	From            time.Time
	To              time.Time
	DurationMinutes int
	Slots           []Slot
}

// Slot модель доступного временного слота
type Slot struct {
	StartAt         time.Time // Абсолютное время начала
	DurationMinutes int       // Длительность в минутах
}

// fromDomainSlots конвертирует доменные слоты в response-модели
func fromDomainSlots(slots []domain.AvailableTimeSlot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			StartAt:         s.StartAt,
			DurationMinutes: s.DurationMinutes,
		}
	}
	return result
}
