package book_appointment

import (
	"context"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/internal/integrations/googlecalendar"
	"github.com/apaddicto/APD-BookingService/internal/integrations/notifier"
)

// AppointmentRepository persists appointments.
type AppointmentRepository interface {
	// Create inserts a new appointment. A unique violation on the active
	// slot index surfaces as the repository's slot-taken error.
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)

	// GetByDateRange returns active appointments matching the filter.
	// Inside a transaction a single-day query locks the returned rows.
	GetByDateRange(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)

	// SetExternalEventID records the calendar mirror id and clears the
	// pending flag
	SetExternalEventID(ctx context.Context, id int64, eventID string) error

	// MarkCalendarSyncPending flags a booking whose calendar mirror failed
	MarkCalendarSyncPending(ctx context.Context, id int64) error
}

// CalendarClient reads the calendar and mirrors bookings into it.
type CalendarClient interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]domain.CalendarEvent, error)
	CreateAppointmentEvent(ctx context.Context, input googlecalendar.AppointmentEventInput) (string, error)
}

// Notifier sends patient-facing confirmations. Best-effort only.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, n notifier.BookingNotification) error
}

// TransactionManager runs a function inside a serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
