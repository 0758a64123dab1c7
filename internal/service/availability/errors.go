package availability

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrWindowNotFound is returned when the event to delete does not exist
	ErrWindowNotFound = errors.New("availability window not found")

	// ErrCalendarUnavailable is returned when the calendar cannot be written
	ErrCalendarUnavailable = errors.New("calendar unavailable")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
