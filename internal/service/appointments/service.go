package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	apptRepo "github.com/campuscare/PSC-SchedulingService/internal/infra/storage/appointment"
	"github.com/campuscare/PSC-SchedulingService/internal/service/appointments/models"
)

// Service сервис для работы с жизненным циклом записей
type Service struct {
	appointmentRepo    AppointmentRepository
	publisher          EventPublisher
	timeProvider       TimeProvider
	noShowGraceMinutes int
	logger             Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	publisher EventPublisher,
	timeProvider TimeProvider,
	noShowGraceMinutes int,
	logger Logger,
) *Service {
	if noShowGraceMinutes <= 0 {
		noShowGraceMinutes = domain.DefaultNoShowGraceMinutes
	}
	return &Service{
		appointmentRepo:    appointmentRepo,
		publisher:          publisher,
		timeProvider:       timeProvider,
		noShowGraceMinutes: noShowGraceMinutes,
		logger:             logger,
	}
}

// GetByID получает запись по ID
// Проверяет права доступа - запись видят только её стороны
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, actor.UserID)

	appt, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !appt.IsParty(actor.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%d", id)
	return models.FromDomainAppointment(appt), nil
}

// GetStudentAppointments получает историю записей студента
// Опционально фильтрует по статусу
func (s *Service) GetStudentAppointments(ctx context.Context, req *models.GetStudentAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetStudentAppointments: fetching appointments for student=%d, status=%v", req.StudentID, req.Status)

	// Конвертируем статус из строки в domain.AppointmentStatus
	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudentAppointments: invalid status=%s for student=%d", *req.Status, req.StudentID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByStudentID(ctx, req.StudentID, domainStatus)
	if err != nil {
		s.logger.Error("GetStudentAppointments: repository error for student=%d: %v", req.StudentID, err)
		return nil, fmt.Errorf("%w: GetStudentAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudentAppointments: successfully fetched %d appointments for student=%d", len(appointments), req.StudentID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetProviderAppointments получает записи провайдера с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению освобождённых интервалов
func (s *Service) GetProviderAppointments(ctx context.Context, req *models.GetProviderAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetProviderAppointments: fetching appointments for provider=%d", req.ProviderID)
	if req.From != nil && req.To != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeReleased {
		logMsg += ", includeReleased=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProviderAppointments: invalid filter for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByProviderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProviderAppointments: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: GetProviderAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProviderAppointments: successfully fetched %d appointments for provider=%d", len(appointments), req.ProviderID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Confirm подтверждает запись
// Доступно только провайдеру записи, переход scheduled -> confirmed
func (s *Service) Confirm(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("Confirm: confirming appointment id=%d by user=%d", id, actor.UserID)

	return s.applyTransition(ctx, "Confirm", id, actor, domain.TransitionConfirm, nil)
}

// Complete завершает запись
// Доступно только провайдеру записи, переход confirmed -> completed
func (s *Service) Complete(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("Complete: completing appointment id=%d by user=%d", id, actor.UserID)

	return s.applyTransition(ctx, "Complete", id, actor, domain.TransitionComplete, nil)
}

// MarkNoShow отмечает неявку студента
// Доступно только провайдеру записи и только после начала записи
// плюс grace-период
func (s *Service) MarkNoShow(ctx context.Context, id int64, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("MarkNoShow: marking no-show for appointment id=%d by user=%d", id, actor.UserID)

	guard := func(appt *domain.Appointment) error {
		earliest := appt.StartAt.Add(time.Duration(s.noShowGraceMinutes) * time.Minute)
		if s.timeProvider.Now().Before(earliest) {
			s.logger.Warn("MarkNoShow: appointment id=%d cannot be marked before %s",
				appt.ID, earliest.Format(time.RFC3339))
			return ErrTooEarlyForNoShow
		}
		return nil
	}

	return s.applyTransition(ctx, "MarkNoShow", id, actor, domain.TransitionMarkNoShow, guard)
}

// Cancel отменяет запись, фиксируя инициатора и причину
// Доступно обеим сторонам записи из любого нетерминального статуса
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d(%s)", id, req.Actor.UserID, req.Actor.Role)

	appt, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkTransitionAccess(appt, req.Actor, domain.TransitionCancel); err != nil {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.Actor.UserID, id)
		return nil, err
	}

	if !domain.CanTransition(appt.Status, domain.TransitionCancel) {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
		return nil, ErrInvalidTransition
	}

	allowedFrom := domain.TransitionFromStatuses(domain.TransitionCancel)
	if err := s.appointmentRepo.Cancel(ctx, id, req.Actor.Role, req.CancellationReason, allowedFrom); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			// Статус изменился между чтением и обновлением
			return nil, s.resolveGuardMiss(ctx, "Cancel", id)
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d by %s", id, req.Actor.Role)

	s.publisher.AppointmentCancelled(ctx, updated)

	return models.FromDomainAppointment(updated), nil
}

// Вспомогательные методы

// applyTransition выполняет именованный переход жизненного цикла:
// чтение, проверка прав, проверка перехода, условное обновление статуса
func (s *Service) applyTransition(
	ctx context.Context,
	op string,
	id int64,
	actor domain.Actor,
	transition domain.Transition,
	guard func(*domain.Appointment) error,
) (*models.AppointmentResponse, error) {
	appt, err := s.getAppointment(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkTransitionAccess(appt, actor, transition); err != nil {
		s.logger.Warn("%s: access denied for user=%d to appointment id=%d", op, actor.UserID, id)
		return nil, err
	}

	if !domain.CanTransition(appt.Status, transition) {
		s.logger.Warn("%s: transition not allowed for appointment id=%d, status=%s", op, id, appt.Status)
		return nil, ErrInvalidTransition
	}

	if guard != nil {
		if err := guard(appt); err != nil {
			return nil, err
		}
	}

	target := domain.TransitionTarget(transition)
	allowedFrom := domain.TransitionFromStatuses(transition)

	if err := s.appointmentRepo.UpdateStatus(ctx, id, target, allowedFrom); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			// Статус изменился между чтением и обновлением
			return nil, s.resolveGuardMiss(ctx, op, id)
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	updated, err := s.getAppointment(ctx, op, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: appointment id=%d moved to status=%s", op, id, updated.Status)

	if transition == domain.TransitionComplete {
		s.publisher.AppointmentCompleted(ctx, updated)
	}

	return models.FromDomainAppointment(updated), nil
}

// checkTransitionAccess проверяет, что актор является стороной записи
// со стороны своей роли и его роль допущена к переходу
func (s *Service) checkTransitionAccess(appt *domain.Appointment, actor domain.Actor, transition domain.Transition) error {
	if !domain.RoleAllowed(transition, actor.Role) {
		return ErrAccessDenied
	}

	switch actor.Role {
	case domain.RoleStudent:
		if appt.StudentID != actor.UserID {
			return ErrAccessDenied
		}
	case domain.RoleProvider:
		if appt.ProviderID != actor.UserID {
			return ErrAccessDenied
		}
	default:
		return ErrAccessDenied
	}

	return nil
}

// getAppointment читает запись, приводя ошибки репозитория к ошибкам сервиса
func (s *Service) getAppointment(ctx context.Context, op string, id int64) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// resolveGuardMiss различает "запись удалена" и "статус ушёл из-под guard-а"
// после условного обновления, затронувшего 0 строк
func (s *Service) resolveGuardMiss(ctx context.Context, op string, id int64) error {
	_, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found during update", op, id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Warn("%s: appointment id=%d changed status concurrently", op, id)
	return ErrInvalidTransition
}
