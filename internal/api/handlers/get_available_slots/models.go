package get_available_slots

import (
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	getAvailableSlots "github.com/campuscare/PSC-SchedulingService/internal/usecase/get_available_slots"
)

// ToUseCaseRequest собирает запрос use case из параметров HTTP запроса
func ToUseCaseRequest(providerID int64, fromStr, toStr string, durationMinutes int) (*getAvailableSlots.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProviderID:      providerID,
		From:            from,
		To:              to,
		DurationMinutes: durationMinutes,
	}, nil
}

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartAt         time.Time `json:"startAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// GetAvailableSlotsResponse HTTP response model
type GetAvailableSlotsResponse struct {
	ProviderID      int64          `json:"providerId"`
	From            string         `json:"from"`
	To              string         `json:"to"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *GetAvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			StartAt:         s.StartAt,
			DurationMinutes: s.DurationMinutes,
		}
	}

	return &GetAvailableSlotsResponse{
		ProviderID:      resp.ProviderID,
		From:            resp.From.Format(domain.DateFormat),
		To:              resp.To.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
