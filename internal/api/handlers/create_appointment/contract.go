package create_appointment

import (
	"context"

	bookAppointment "github.com/apaddicto/APD-BookingService/internal/usecase/book_appointment"
)

type BookAppointmentUseCase interface {
	Execute(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error)
}

// Metrics counts booking outcomes.
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
