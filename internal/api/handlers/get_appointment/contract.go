package get_appointment

import (
	"context"

	"github.com/apaddicto/APD-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetByRef(ctx context.Context, ref string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
