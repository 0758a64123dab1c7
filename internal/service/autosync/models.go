package autosync

import (
	"time"

	"github.com/apaddicto/APD-BookingService/internal/usecase/reconcile_calendar"
)

// Stats describes the sync loop's current state.
type Stats struct {
	LastSyncTime   *time.Time                 `json:"lastSyncTime,omitempty"`
	CacheValid     bool                       `json:"cacheValid"`
	PollingActive  bool                       `json:"pollingActive"`
	SyncInProgress bool                       `json:"syncInProgress"`
	LastResult     *reconcile_calendar.Result `json:"lastResult,omitempty"`
}
