package autosync

import (
	"context"

	"github.com/apaddicto/APD-BookingService/internal/usecase/reconcile_calendar"
)

// Reconciler runs one calendar reconcile sweep.
type Reconciler interface {
	Execute(ctx context.Context) (*reconcile_calendar.Result, error)
}

// Metrics records sweep outcomes.
type Metrics interface {
	ObserveReconcile(cancelled int)
}

// Logger is the logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
