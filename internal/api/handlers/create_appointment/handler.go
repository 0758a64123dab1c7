package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/api/handlers"
	"github.com/apaddicto/APD-BookingService/internal/domain"
	bookAppointment "github.com/apaddicto/APD-BookingService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody  = "corps de requête invalide"
	msgInvalidDate         = "format de date invalide, attendu YYYY-MM-DD"
	msgInvalidTime         = "format d'heure invalide, attendu HH:MM"
	msgInvalidInput        = "données invalides"
	msgInvalidBookingDate  = "date de rendez-vous invalide"
	msgDateTooFar          = "date trop éloignée, réservation possible 30 jours à l'avance"
	msgBookingTooSoon      = "ce créneau commence trop tôt, réservez au moins 2 heures à l'avance"
	msgSlotNotAvailable    = "ce créneau n'est pas disponible"
	msgSlotConflict        = "ce créneau vient d'être réservé par quelqu'un d'autre"
	msgCalendarUnavailable = "calendrier indisponible, veuillez réessayer"
	msgTimeout             = "la réservation a expiré, vérifiez vos rendez-vous avant de réessayer"
)

type Handler struct {
	useCase BookAppointmentUseCase
	metrics Metrics // nil when metrics are disabled
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if _, dateErr := time.Parse(domain.DateFormat, req.Date); dateErr != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
		} else {
			handlers.RespondBadRequest(w, msgInvalidTime)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: date=%s time=%s", req.Date, req.StartTime)
			if h.metrics != nil {
				h.metrics.IncBookingConflict()
			}
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, bookAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: date=%s time=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, bookAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, bookAppointment.ErrBookingTooSoon):
			h.logger.Warn("POST /appointments - Too soon: date=%s time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgBookingTooSoon)

		case errors.Is(err, bookAppointment.ErrCalendarUnavailable):
			h.logger.Error("POST /appointments - Calendar unavailable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCalendarUnavailable)

		case errors.Is(err, bookAppointment.ErrTimeout):
			// The outcome is indeterminate; tell the client to re-query
			// rather than retry blindly
			h.logger.Error("POST /appointments - Timed out, outcome indeterminate: date=%s time=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusGatewayTimeout, msgTimeout)

		default:
			h.logger.Error("POST /appointments - Failed to book: date=%s time=%s error=%v", req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if h.metrics != nil {
		h.metrics.IncBookingCreated()
	}

	h.logger.Info("POST /appointments - Appointment created: ref=%s date=%s time=%s",
		result.PublicRef, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
