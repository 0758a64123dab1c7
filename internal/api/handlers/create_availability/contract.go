package create_availability

import (
	"context"

	"github.com/apaddicto/APD-BookingService/internal/service/availability"
)

type AvailabilityService interface {
	CreateWindow(ctx context.Context, req *availability.CreateWindowRequest) (*availability.WindowResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
