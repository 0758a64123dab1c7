package list_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/api/handlers"
	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/internal/service/appointments"
	"github.com/apaddicto/APD-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidDate   = "format de date invalide, attendu YYYY-MM-DD"
	msgInvalidStatus = "statut invalide"
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

// Handle GET /api/v1/admin/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListAppointmentsRequest{
		IncludeInactive: query.Get("includeInactive") == "true",
	}

	if v := query.Get("startDate"); v != "" {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid startDate %q", v)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &d
	}
	if v := query.Get("endDate"); v != "" {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid endDate %q", v)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &d
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/appointments - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/appointments - Fetched %d appointments", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
