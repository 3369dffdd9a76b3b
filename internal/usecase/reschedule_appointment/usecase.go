package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	apptRepo "github.com/campuscare/PSC-SchedulingService/internal/infra/storage/appointment"
	"github.com/campuscare/PSC-SchedulingService/pkg/txmanager"
)

// UseCase use case переноса записи на новый интервал
//
// Перенос выполняется update-in-place в одной сериализуемой транзакции:
// сначала новый интервал проверяется тем же guard-ом, что и бронирование,
// и только после успешной проверки запись переносится. Старый интервал
// никогда не освобождается раньше, чем закреплён новый: при любом сбое
// транзакция откатывается и запись остаётся на прежнем месте
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	publisher        EventPublisher
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
		logger:           logger,
	}
}

// Execute выполняет use case переноса записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, actor=%d(%s), newStart=%s, newDuration=%d",
		req.AppointmentID, req.Actor.UserID, req.Actor.Role,
		req.NewStartAt.Format(time.RFC3339), req.NewDurationMins)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Читаем запись с блокировкой строки
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2. Права: актор должен быть стороной записи, роль - иметь право переноса
		if !domain.RoleAllowed(domain.TransitionReschedule, req.Actor.Role) || !isParty(appt, req.Actor) {
			uc.logger.Warn("RescheduleAppointment: access denied for user=%d on appointment id=%d",
				req.Actor.UserID, appt.ID)
			return ErrAccessDenied
		}

		// 3. Статус: перенос возможен только из нетерминального состояния
		if !domain.CanTransition(appt.Status, domain.TransitionReschedule) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d in status=%s", appt.ID, appt.Status)
			return ErrInvalidTransition
		}

		// 4. Guard нового интервала - идентичен guard-у бронирования
		windows, err := uc.availabilityRepo.ListByProviderAndWeekday(
			txCtx, appt.ProviderID, int(req.NewStartAt.Weekday()), true)
		if err != nil {
			return fmt.Errorf("%w: failed to list windows: %v", ErrInternal, err)
		}

		if !slotWithinWindows(windows, req.NewStartAt, req.NewDurationMins) {
			return ErrOutsideAvailability
		}

		newEnd := req.NewStartAt.Add(time.Duration(req.NewDurationMins) * time.Minute)
		existing, err := uc.appointmentRepo.GetByProviderInRange(txCtx, appt.ProviderID, req.NewStartAt, newEnd)
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		// Сама переносимая запись конфликтом не считается
		if conflict := domain.FindConflictExcluding(existing, req.NewStartAt, req.NewDurationMins, appt.ID); conflict != nil {
			uc.logger.Warn("RescheduleAppointment: conflict with appointment id=%d", conflict.ID)
			return domain.NewSlotConflictError(conflict)
		}

		// 5. Переносим запись, статус сохраняется
		if err := uc.appointmentRepo.UpdateSchedule(txCtx, appt.ID, req.NewStartAt, req.NewDurationMins); err != nil {
			return err
		}

		appt.StartAt = req.NewStartAt
		appt.DurationMinutes = req.NewDurationMins
		result = appt
		return nil
	})

	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d", result.ID)

	uc.publisher.AppointmentRescheduled(ctx, result)

	return fromDomain(result), nil
}

// mapTxError приводит ошибку транзакции к ошибкам контракта use case
func (uc *UseCase) mapTxError(err error) error {
	var conflictErr *domain.SlotConflictError
	if errors.As(err, &conflictErr) {
		return err
	}

	switch {
	case errors.Is(err, ErrAppointmentNotFound),
		errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrOutsideAvailability),
		errors.Is(err, ErrInvalidInput):
		return err
	}

	if errors.Is(err, apptRepo.ErrSlotTaken) ||
		txmanager.IsSerializationFailure(err) ||
		errors.Is(err, txmanager.ErrBeginTx) ||
		errors.Is(err, txmanager.ErrCommitTx) {
		uc.logger.Warn("RescheduleAppointment: transaction aborted, caller may retry: %v", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	uc.logger.Error("RescheduleAppointment: transaction failed: %v", err)
	return err
}

// isParty проверяет, что актор - сторона записи со стороны своей роли
func isParty(appt *domain.Appointment, actor domain.Actor) bool {
	switch actor.Role {
	case domain.RoleStudent:
		return appt.StudentID == actor.UserID
	case domain.RoleProvider:
		return appt.ProviderID == actor.UserID
	default:
		return false
	}
}
