package cancel_appointment

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
	msgCannotCancel        = "ce rendez-vous ne peut plus être annulé"
	msgInvalidInput        = "données invalides"
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

// Handle PATCH /api/v1/appointments/{ref}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]
	if _, err := uuid.Parse(ref); err != nil {
		h.logger.Warn("PATCH /appointments/{ref}/cancel - Invalid ref %q", ref)
		handlers.RespondBadRequest(w, msgInvalidRef)
		return
	}

	// The body is optional; an empty one means "no reason given"
	var req models.CancelAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /appointments/{ref}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), ref, &req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{ref}/cancel - Not found: ref=%s", ref)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrCannotCancel):
			h.logger.Warn("PATCH /appointments/{ref}/cancel - Cannot cancel: ref=%s", ref)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{ref}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{ref}/cancel - Failed: ref=%s error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{ref}/cancel - Cancelled: ref=%s", ref)
	handlers.RespondJSON(w, http.StatusOK, result)
}
