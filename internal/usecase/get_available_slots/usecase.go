package get_available_slots

import (
	"context"
	"fmt"
)

// UseCase use case получения доступных слотов для бронирования
// Вычисление только читает: окна и записи берутся snapshot-чтением без
// блокировок, устаревший список грозит максимум конфликтом при бронировании,
// но никогда двойной записью
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, from=%s, to=%s, duration=%d",
		req.ProviderID, req.From.Format("2006-01-02"), req.To.Format("2006-01-02"), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Активные окна провайдера (отсортированы по дню недели и началу)
	windows, err := uc.availabilityRepo.ListByProvider(ctx, req.ProviderID, true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
	}

	// 3. Записи, занимающие время провайдера в диапазоне
	rangeStart := startOfDay(req.From)
	rangeEnd := startOfDay(req.To).AddDate(0, 0, 1)

	appointments, err := uc.appointmentRepo.GetByProviderInRange(ctx, req.ProviderID, rangeStart, rangeEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Чистое разворачивание окон в слоты минус занятые интервалы
	slots, err := generateSlots(req.ProviderID, windows, appointments, req.From, req.To, req.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for provider=%d", len(slots), req.ProviderID)

	return &Response{
		ProviderID:      req.ProviderID,
		From:            req.From,
		To:              req.To,
		DurationMinutes: req.DurationMinutes,
		Slots:           fromDomainSlots(slots),
	}, nil
}
