package trigger_sync

import (
	"time"

	"github.com/apaddicto/APD-BookingService/internal/service/autosync"
	"github.com/apaddicto/APD-BookingService/internal/usecase/reconcile_calendar"
)

// SyncResultResponse is the HTTP view of one reconcile sweep.
type SyncResultResponse struct {
	Checked    int       `json:"checked"`
	Cancelled  int       `json:"cancelled"`
	FreedSlots []string  `json:"freedSlots,omitempty"`
	Mirrored   int       `json:"mirrored"`
	Errors     []string  `json:"errors,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	DurationMS int64     `json:"durationMs"`
}

// SyncStatsResponse is the HTTP view of the sync loop state.
type SyncStatsResponse struct {
	LastSyncTime   *time.Time          `json:"lastSyncTime,omitempty"`
	CacheValid     bool                `json:"cacheValid"`
	PollingActive  bool                `json:"pollingActive"`
	SyncInProgress bool                `json:"syncInProgress"`
	LastResult     *SyncResultResponse `json:"lastResult,omitempty"`
}

// FromResult converts a sweep result to the HTTP model.
func FromResult(r *reconcile_calendar.Result) *SyncResultResponse {
	if r == nil {
		return nil
	}
	return &SyncResultResponse{
		Checked:    r.Checked,
		Cancelled:  r.Cancelled,
		FreedSlots: r.FreedSlots,
		Mirrored:   r.Mirrored,
		Errors:     r.Errors,
		StartedAt:  r.StartedAt,
		DurationMS: r.Duration.Milliseconds(),
	}
}

// FromStats converts sync stats to the HTTP model.
func FromStats(s autosync.Stats) *SyncStatsResponse {
	return &SyncStatsResponse{
		LastSyncTime:   s.LastSyncTime,
		CacheValid:     s.CacheValid,
		PollingActive:  s.PollingActive,
		SyncInProgress: s.SyncInProgress,
		LastResult:     FromResult(s.LastResult),
	}
}
