package get_available_slots

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange is returned when startDate is after endDate
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrDateTooFarInFuture is returned when the range exceeds the booking horizon
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrCalendarUnavailable is returned when the calendar cannot be read.
	// Availability is never served from stale or partial data.
	ErrCalendarUnavailable = errors.New("calendar unavailable")

	// ErrStoreUnavailable is returned when the appointments table cannot be
	// read. Same rule as the calendar: no partial output.
	ErrStoreUnavailable = errors.New("appointment store unavailable")

	// ErrInternal is returned on internal usecase errors
	ErrInternal = errors.New("usecase: internal error")
)
