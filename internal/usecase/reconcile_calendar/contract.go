package reconcile_calendar

import (
	"context"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/internal/integrations/googlecalendar"
	"github.com/apaddicto/APD-BookingService/internal/integrations/notifier"
)

// AppointmentRepository reads and updates appointments for the sweep.
type AppointmentRepository interface {
	// GetReconcilable returns pending and confirmed appointments with a
	// calendar mirror inside the date range
	GetReconcilable(ctx context.Context, start, end time.Time) ([]*domain.Appointment, error)

	// GetPendingCalendarSync returns active appointments whose calendar
	// mirror has not been created yet
	GetPendingCalendarSync(ctx context.Context) ([]*domain.Appointment, error)

	// Cancel marks an appointment cancelled with the given reason
	Cancel(ctx context.Context, id int64, reason string) error

	// SetExternalEventID records the calendar mirror id and clears the
	// pending flag
	SetExternalEventID(ctx context.Context, id int64, eventID string) error
}

// CalendarClient checks and creates calendar events.
type CalendarClient interface {
	EventExists(ctx context.Context, eventID string) (bool, error)
	CreateAppointmentEvent(ctx context.Context, input googlecalendar.AppointmentEventInput) (string, error)
}

// Notifier informs patients of externally-triggered cancellations.
type Notifier interface {
	SendCancellationNotice(ctx context.Context, n notifier.CancellationNotification) error
}

// TimeProvider abstracts the current time (for testing).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
