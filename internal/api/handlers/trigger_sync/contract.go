package trigger_sync

import (
	"context"

	"github.com/apaddicto/APD-BookingService/internal/service/autosync"
	"github.com/apaddicto/APD-BookingService/internal/usecase/reconcile_calendar"
)

type AutoSyncService interface {
	Sync(ctx context.Context, force bool) (*reconcile_calendar.Result, error)
	Stats() autosync.Stats
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
