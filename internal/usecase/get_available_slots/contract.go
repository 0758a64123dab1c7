package get_available_slots

import (
	"context"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
)

// CalendarClient reads the practitioner's calendar. The returned events
// are already classified and recurring events already expanded.
type CalendarClient interface {
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]domain.CalendarEvent, error)
}

// AppointmentRepository reads booked appointments from storage.
type AppointmentRepository interface {
	// GetByDateRange returns active appointments matching the filter
	GetByDateRange(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
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
