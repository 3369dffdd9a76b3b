package deactivate_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/campuscare/PSC-SchedulingService/internal/api/handlers"
	"github.com/campuscare/PSC-SchedulingService/internal/api/middleware"
	"github.com/campuscare/PSC-SchedulingService/internal/service/availability"
)

const (
	msgInvalidWindowID = "некорректный ID окна"
	msgMissingActor    = "отсутствует идентичность пользователя"
	msgNotFound        = "окно не найдено"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/windows/{windowId}/deactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	windowIDStr := vars["windowId"]

	windowID, err := strconv.ParseInt(windowIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /windows/{id}/deactivate - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /windows/{id}/deactivate - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	err = h.service.DeactivateWindow(r.Context(), windowID, actor)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrWindowNotFound):
			h.logger.Warn("PATCH /windows/{id}/deactivate - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PATCH /windows/{id}/deactivate - Access denied: window_id=%d, user_id=%d",
				windowID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /windows/{id}/deactivate - Failed to deactivate window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /windows/{id}/deactivate - Window deactivated successfully: window_id=%d, user_id=%d",
		windowID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
