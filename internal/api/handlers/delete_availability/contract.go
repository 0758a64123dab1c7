package delete_availability

import "context"

type AvailabilityService interface {
	DeleteWindow(ctx context.Context, eventID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
