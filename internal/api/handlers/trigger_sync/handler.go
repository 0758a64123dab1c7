package trigger_sync

import (
	"net/http"

	"github.com/apaddicto/APD-BookingService/internal/api/handlers"
)

const msgSyncFailed = "la synchronisation du calendrier a échoué"

type Handler struct {
	service AutoSyncService
	logger  Logger
}

func NewHandler(service AutoSyncService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	result, err := h.service.Sync(r.Context(), force)
	if err != nil {
		h.logger.Error("POST /admin/sync - Sweep failed: %v", err)
		handlers.RespondError(w, http.StatusBadGateway, msgSyncFailed)
		return
	}

	h.logger.Info("POST /admin/sync - checked=%d cancelled=%d mirrored=%d errors=%d",
		result.Checked, result.Cancelled, result.Mirrored, len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}

// HandleStats GET /api/v1/admin/sync/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromStats(h.service.Stats()))
}
