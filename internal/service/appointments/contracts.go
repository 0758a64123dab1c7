package appointments

import (
	"context"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/internal/integrations/notifier"
)

// AppointmentRepository is the storage surface the service needs.
type AppointmentRepository interface {
	GetByPublicRef(ctx context.Context, ref string) (*domain.Appointment, error)
	GetByDateRange(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// CalendarClient removes the calendar mirror of a cancelled appointment.
type CalendarClient interface {
	DeleteEvent(ctx context.Context, eventID string) error
}

// Notifier informs the patient of a cancellation. Best-effort.
type Notifier interface {
	SendCancellationNotice(ctx context.Context, n notifier.CancellationNotification) error
}

// Logger is the logging surface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
