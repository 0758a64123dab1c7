package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/apaddicto/APD-BookingService/internal/api/handlers"
	"github.com/apaddicto/APD-BookingService/internal/service/appointments"
	"github.com/apaddicto/APD-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidRef          = "référence de rendez-vous invalide"
	msgInvalidRequestBody  = "corps de requête invalide"
	msgAppointmentNotFound = "rendez-vous introuvable"
	msgInvalidStatus       = "statut invalide"
	msgInvalidTransition   = "changement de statut non autorisé"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/appointments/{ref}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	if _, err := uuid.Parse(ref); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{ref}/status - Invalid ref %q", ref)
		handlers.RespondBadRequest(w, msgInvalidRef)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/appointments/{ref}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), ref, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /admin/appointments/{ref}/status - Not found: ref=%s", ref)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/appointments/{ref}/status - Invalid status %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /admin/appointments/{ref}/status - Invalid transition: %v", err)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /admin/appointments/{ref}/status - Failed: ref=%s error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/appointments/{ref}/status - Updated: ref=%s status=%s", ref, req.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
