package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	availRepo "github.com/campuscare/PSC-SchedulingService/internal/infra/storage/availability"
	"github.com/campuscare/PSC-SchedulingService/internal/service/availability/models"
	"github.com/campuscare/PSC-SchedulingService/pkg/types"
)

// Service сервис для работы с окнами доступности провайдеров
type Service struct {
	availabilityRepo AvailabilityRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// SetWindow добавляет окно доступности провайдера
// Доступно только самому провайдеру. Новое окно не должно пересекаться
// с существующими активными окнами на тот же день недели
func (s *Service) SetWindow(ctx context.Context, req *models.SetWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("SetWindow: provider=%d, weekday=%d, interval=%s-%s",
		req.ProviderID, req.Weekday, req.StartTime, req.EndTime)

	if err := s.checkProviderAccess(req.Actor, req.ProviderID); err != nil {
		s.logger.Warn("SetWindow: access denied for user=%d to provider=%d", req.Actor.UserID, req.ProviderID)
		return nil, err
	}

	window, err := s.buildWindow(req)
	if err != nil {
		s.logger.Warn("SetWindow: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	var created *domain.AvailabilityWindow

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Читаем окна дня с блокировкой, чтобы два конкурентных SetWindow
		// не создали пересекающиеся окна
		existing, err := s.availabilityRepo.ListByProviderAndWeekday(txCtx, req.ProviderID, req.Weekday, true)
		if err != nil {
			return fmt.Errorf("%w: SetWindow - failed to list windows: %v", ErrInternal, err)
		}

		for _, w := range existing {
			if domain.OverlapsWindow(window.StartTime, window.EndTime, w.StartTime, w.EndTime) {
				s.logger.Warn("SetWindow: window overlaps existing window id=%d (%s-%s)",
					w.ID, w.StartTime, w.EndTime)
				return fmt.Errorf("%w: conflicts with window %s-%s", ErrWindowOverlap, w.StartTime, w.EndTime)
			}
		}

		created, err = s.availabilityRepo.Create(txCtx, window)
		if err != nil {
			return fmt.Errorf("%w: SetWindow - failed to create window: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrWindowOverlap) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("SetWindow: transaction failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: SetWindow - transaction failed: %v", ErrInternal, err)
	}

	s.logger.Info("SetWindow: successfully created window id=%d for provider=%d", created.ID, created.ProviderID)
	return models.FromDomainWindow(created), nil
}

// DeactivateWindow деактивирует окно доступности
// Доступно только владельцу окна. Уже забронированные записи не затрагиваются
func (s *Service) DeactivateWindow(ctx context.Context, id int64, actor domain.Actor) error {
	s.logger.Info("DeactivateWindow: window id=%d by user=%d", id, actor.UserID)

	window, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availRepo.ErrWindowNotFound) {
			s.logger.Warn("DeactivateWindow: window id=%d not found", id)
			return ErrWindowNotFound
		}
		s.logger.Error("DeactivateWindow: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: DeactivateWindow - repository error: %v", ErrInternal, err)
	}

	if err := s.checkProviderAccess(actor, window.ProviderID); err != nil {
		s.logger.Warn("DeactivateWindow: access denied for user=%d to window id=%d", actor.UserID, id)
		return err
	}

	// Повторная деактивация идемпотентна
	if !window.Active {
		s.logger.Info("DeactivateWindow: window id=%d already inactive", id)
		return nil
	}

	if err := s.availabilityRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, availRepo.ErrWindowNotFound) {
			s.logger.Warn("DeactivateWindow: window id=%d not found during update", id)
			return ErrWindowNotFound
		}
		s.logger.Error("DeactivateWindow: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: DeactivateWindow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeactivateWindow: successfully deactivated window id=%d", id)
	return nil
}

// ListWindows получает окна доступности провайдера
// По умолчанию возвращает только активные окна
func (s *Service) ListWindows(ctx context.Context, req *models.ListWindowsRequest) (*models.WindowListResponse, error) {
	s.logger.Info("ListWindows: fetching windows for provider=%d, includeInactive=%v",
		req.ProviderID, req.IncludeInactive)

	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	windows, err := s.availabilityRepo.ListByProvider(ctx, req.ProviderID, !req.IncludeInactive)
	if err != nil {
		s.logger.Error("ListWindows: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWindows: successfully fetched %d windows for provider=%d", len(windows), req.ProviderID)
	return models.FromDomainWindowList(windows), nil
}

// Вспомогательные методы

// checkProviderAccess проверяет, что актор - провайдер и управляет своим расписанием
func (s *Service) checkProviderAccess(actor domain.Actor, providerID int64) error {
	if actor.Role != domain.RoleProvider || actor.UserID != providerID {
		return ErrAccessDenied
	}
	return nil
}

// buildWindow валидирует запрос и собирает доменную модель окна
func (s *Service) buildWindow(req *models.SetWindowRequest) (*domain.AvailabilityWindow, error) {
	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return &domain.AvailabilityWindow{
		ProviderID: req.ProviderID,
		Weekday:    time.Weekday(req.Weekday),
		StartTime:  startTime,
		EndTime:    endTime,
		Active:     true,
	}, nil
}
