package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	apptRepo "github.com/campuscare/PSC-SchedulingService/internal/infra/storage/appointment"
	"github.com/campuscare/PSC-SchedulingService/pkg/txmanager"
)

// UseCase use case для создания записи на консультацию
// Пара "проверка занятости + вставка" выполняется в одной сериализуемой
// транзакции: при конкурентных запросах на пересекающиеся интервалы ровно
// одна запись фиксируется, остальные получают конфликт. Автоматических
// повторов нет - вызывающий обязан перечитать слоты и отправить запрос заново
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	publisher        EventPublisher
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		publisher:        publisher,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: student=%d, provider=%d, start=%s, duration=%d",
		req.StudentID, req.ProviderID, req.StartAt.Format(timeLogFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Проверка окна доступности, проверка занятости и вставка -
	// одна неделимая единица работы против хранилища
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Запрошенный интервал должен целиком попадать в активное окно
		windows, err := uc.availabilityRepo.ListByProviderAndWeekday(
			txCtx, req.ProviderID, int(req.StartAt.Weekday()), true)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to list windows: %v", err)
			return fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
		}

		if !slotWithinWindows(windows, req.StartAt, req.DurationMinutes) {
			uc.logger.Warn("BookAppointment: slot outside availability: provider=%d, start=%s",
				req.ProviderID, req.StartAt.Format(timeLogFormat))
			return ErrOutsideAvailability
		}

		// 2.2. Перечитываем занятость по текущему зафиксированному состоянию
		// (строки блокируются FOR UPDATE внутри транзакции)
		end := req.StartAt.Add(minutes(req.DurationMinutes))
		existing, err := uc.appointmentRepo.GetByProviderInRange(txCtx, req.ProviderID, req.StartAt, end)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		if conflict := domain.FindConflict(existing, req.StartAt, req.DurationMinutes); conflict != nil {
			uc.logger.Warn("BookAppointment: conflict with appointment id=%d", conflict.ID)
			return domain.NewSlotConflictError(conflict)
		}

		// 2.3. Вставляем запись в статусе scheduled
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			StudentID:       req.StudentID,
			ProviderID:      req.ProviderID,
			StartAt:         req.StartAt,
			DurationMinutes: req.DurationMinutes,
			Status:          domain.StatusScheduled,
			LocationKind:    domain.LocationKind(req.LocationKind),
			MeetingLink:     req.MeetingLink,
			Notes:           req.Notes,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(ctx, err, req)
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	// 3. Уведомление внешнего notification service (fire-and-forget)
	uc.publisher.AppointmentCreated(ctx, result)

	return fromDomain(result), nil
}

// mapTxError приводит ошибку транзакции к ошибкам контракта use case
func (uc *UseCase) mapTxError(ctx context.Context, err error, req *Request) error {
	// Доменный конфликт и валидационные ошибки пробрасываются как есть
	var conflictErr *domain.SlotConflictError
	if errors.As(err, &conflictErr) {
		return err
	}
	if errors.Is(err, ErrOutsideAvailability) || errors.Is(err, ErrInvalidInput) {
		return err
	}

	// Exclusion constraint сработал раньше нашей проверки: параллельная
	// транзакция уже зафиксировала пересекающуюся запись. Достаём её,
	// чтобы вернуть вызывающему конфликтующий интервал
	if errors.Is(err, apptRepo.ErrSlotTaken) {
		end := req.StartAt.Add(minutes(req.DurationMinutes))
		existing, readErr := uc.appointmentRepo.GetByProviderInRange(ctx, req.ProviderID, req.StartAt, end)
		if readErr == nil {
			if conflict := domain.FindConflict(existing, req.StartAt, req.DurationMinutes); conflict != nil {
				return domain.NewSlotConflictError(conflict)
			}
		}
		// Конфликтующая запись уже не видна - транзакцию можно повторить
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if txmanager.IsSerializationFailure(err) ||
		errors.Is(err, txmanager.ErrBeginTx) ||
		errors.Is(err, txmanager.ErrCommitTx) {
		uc.logger.Warn("BookAppointment: transaction aborted, caller may retry: %v", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	uc.logger.Error("BookAppointment: transaction failed: %v", err)
	return err
}
