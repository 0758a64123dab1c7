package get_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/apaddicto/APD-BookingService/internal/api/handlers"
	"github.com/apaddicto/APD-BookingService/internal/service/appointments"
)

const (
	msgInvalidRef          = "référence de rendez-vous invalide"
	msgAppointmentNotFound = "rendez-vous introuvable"
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

// Handle GET /api/v1/appointments/{ref}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	if _, err := uuid.Parse(ref); err != nil {
		h.logger.Warn("GET /appointments/{ref} - Invalid ref %q", ref)
		handlers.RespondBadRequest(w, msgInvalidRef)
		return
	}

	result, err := h.service.GetByRef(r.Context(), ref)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{ref} - Not found: ref=%s", ref)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		default:
			h.logger.Error("GET /appointments/{ref} - Failed: ref=%s error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{ref} - Fetched: ref=%s", ref)
	handlers.RespondJSON(w, http.StatusOK, result)
}
