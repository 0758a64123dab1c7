package delete_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/apaddicto/APD-BookingService/internal/api/handlers"
	"github.com/apaddicto/APD-BookingService/internal/service/availability"
)

const (
	msgInvalidEventID      = "identifiant d'événement invalide"
	msgWindowNotFound      = "créneau de disponibilité introuvable"
	msgCalendarUnavailable = "calendrier indisponible, veuillez réessayer"
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

// Handle DELETE /api/v1/admin/availability/{eventId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	if eventID == "" {
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	if err := h.service.DeleteWindow(r.Context(), eventID); err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("DELETE /admin/availability/{eventId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEventID)

		case errors.Is(err, availability.ErrWindowNotFound):
			h.logger.Warn("DELETE /admin/availability/{eventId} - Not found: event=%s", eventID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, availability.ErrCalendarUnavailable):
			h.logger.Error("DELETE /admin/availability/{eventId} - Calendar unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)

		default:
			h.logger.Error("DELETE /admin/availability/{eventId} - Failed: event=%s error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/availability/{eventId} - Deleted: event=%s", eventID)
	w.WriteHeader(http.StatusNoContent)
}
