package book_appointment

import (
	"errors"
	"net/http"

	"github.com/campuscare/PSC-SchedulingService/internal/api/handlers"
	"github.com/campuscare/PSC-SchedulingService/internal/api/middleware"
	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	bookAppointment "github.com/campuscare/PSC-SchedulingService/internal/usecase/book_appointment"
)

const (
	msgMissingActor        = "отсутствует идентичность пользователя"
	msgStudentsOnly        = "запись может создать только студент"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStartAt      = "некорректный формат времени начала, ожидается RFC 3339"
	msgOutsideAvailability = "запрошенное время вне окон доступности провайдера"
	msgSlotTaken           = "выбранный временной слот занят"
	msgStoreUnavailable    = "хранилище временно недоступно, повторите запрос"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	if actor.Role != domain.RoleStudent {
		h.logger.Warn("POST /appointments - Non-student booking attempt: user_id=%d, role=%s",
			actor.UserID, actor.Role)
		handlers.RespondForbidden(w, msgStudentsOnly)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *domain.SlotConflictError
		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /appointments - Slot taken: student_id=%d, provider_id=%d, conflicting_id=%d",
				actor.UserID, req.ProviderID, conflictErr.AppointmentID)
			handlers.RespondJSON(w, http.StatusConflict, NewConflictResponse(msgSlotTaken, conflictErr))

		case errors.Is(err, bookAppointment.ErrOutsideAvailability):
			h.logger.Warn("POST /appointments - Outside availability: student_id=%d, provider_id=%d",
				actor.UserID, req.ProviderID)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, bookAppointment.ErrStoreUnavailable):
			h.logger.Warn("POST /appointments - Store unavailable: student_id=%d, provider_id=%d",
				actor.UserID, req.ProviderID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("POST /appointments - Failed to book appointment: student_id=%d, provider_id=%d, error=%v",
				actor.UserID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment booked successfully: appointment_id=%d, student_id=%d, provider_id=%d",
		result.ID, actor.UserID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
