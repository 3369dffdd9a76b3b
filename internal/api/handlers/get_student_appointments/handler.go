package get_student_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/campuscare/PSC-SchedulingService/internal/api/handlers"
	"github.com/campuscare/PSC-SchedulingService/internal/api/middleware"
	"github.com/campuscare/PSC-SchedulingService/internal/domain"
	"github.com/campuscare/PSC-SchedulingService/internal/service/appointments"
	"github.com/campuscare/PSC-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidStudentID = "некорректный ID студента"
	msgMissingActor     = "отсутствует идентичность пользователя"
	msgForbidden        = "доступ запрещен"
	msgInvalidParams    = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/students/{studentId}/appointments
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	studentIDStr := vars["studentId"]

	studentID, err := strconv.ParseInt(studentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /students/{id}/appointments - Invalid student ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStudentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /students/{id}/appointments - Missing actor in context")
		handlers.RespondUnauthorized(w, msgMissingActor)
		return
	}

	// Студент видит только собственную историю
	if actor.Role != domain.RoleStudent || actor.UserID != studentID {
		h.logger.Warn("GET /students/{id}/appointments - Access denied: student_id=%d, user_id=%d",
			studentID, actor.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetStudentAppointmentsRequest{
		StudentID: studentID,
	}
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.GetStudentAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /students/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /students/{id}/appointments - Failed to get appointments: student_id=%d, error=%v",
				studentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /students/{id}/appointments - Appointments retrieved successfully: student_id=%d, count=%d",
		studentID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
