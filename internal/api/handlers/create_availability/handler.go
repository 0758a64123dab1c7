package create_availability

import (
	"errors"
	"net/http"

	"github.com/apaddicto/APD-BookingService/internal/api/handlers"
	"github.com/apaddicto/APD-BookingService/internal/service/availability"
)

const (
	msgInvalidRequestBody  = "corps de requête invalide"
	msgInvalidDateOrTime   = "date ou heure invalide, attendu YYYY-MM-DD et HH:MM"
	msgInvalidInput        = "données invalides"
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

// Handle POST /api/v1/admin/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /admin/availability - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.service.CreateWindow(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /admin/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, availability.ErrCalendarUnavailable):
			h.logger.Error("POST /admin/availability - Calendar unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)

		default:
			h.logger.Error("POST /admin/availability - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/availability - Window created: event=%s date=%s", result.EventID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
