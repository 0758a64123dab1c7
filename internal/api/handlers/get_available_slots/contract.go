package get_available_slots

import (
	"context"

	getSlots "github.com/apaddicto/APD-BookingService/internal/usecase/get_available_slots"
	"github.com/apaddicto/APD-BookingService/internal/usecase/reconcile_calendar"
)

type GetAvailableSlotsUseCase interface {
	Execute(ctx context.Context, req *getSlots.Request) (*getSlots.Response, error)
}

// Syncer refreshes the appointments table from the calendar before slots are
// computed. A failed refresh is logged, never surfaced: slightly stale
// appointments are still correct input for the generator.
type Syncer interface {
	Sync(ctx context.Context, force bool) (*reconcile_calendar.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
