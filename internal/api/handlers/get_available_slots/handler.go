package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/apaddicto/APD-BookingService/internal/api/handlers"
	getSlots "github.com/apaddicto/APD-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidDate         = "format de date invalide, attendu YYYY-MM-DD"
	msgInvalidDuration     = "durée de créneau invalide"
	msgInvalidDateRange    = "plage de dates invalide"
	msgDateTooFar          = "date trop éloignée, réservation possible 30 jours à l'avance"
	msgCalendarUnavailable = "calendrier indisponible, veuillez réessayer"
	msgStoreUnavailable    = "service temporairement indisponible, veuillez réessayer"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	syncer  Syncer
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, syncer Syncer, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		syncer:  syncer,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := parseQuery(query.Get("startDate"), query.Get("endDate"), query.Get("slotDuration"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query parameter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Reconcile (cached) before computing, so slots freed by an external
	// deletion show up without waiting for the poller
	if _, err := h.syncer.Sync(r.Context(), false); err != nil {
		h.logger.Warn("GET /availability - Pre-sync failed, serving current state: %v", err)
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getSlots.ErrInvalidDateRange):
			h.logger.Warn("GET /availability - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability - Date too far: %v", err)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getSlots.ErrCalendarUnavailable):
			h.logger.Error("GET /availability - Calendar unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)

		case errors.Is(err, getSlots.ErrStoreUnavailable):
			h.logger.Error("GET /availability - Store unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to compute slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - %d slots over %d days", result.TotalSlots, len(result.AvailableDates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
