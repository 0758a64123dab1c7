package availability

import (
	"context"

	"github.com/apaddicto/APD-BookingService/internal/integrations/googlecalendar"
)

// CalendarClient creates and deletes availability windows in the calendar.
type CalendarClient interface {
	CreateAvailabilityEvent(ctx context.Context, input googlecalendar.AvailabilityEventInput) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Logger is the logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
