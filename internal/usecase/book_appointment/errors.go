package book_appointment

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate is returned when the requested date is in the past
	ErrInvalidDate = errors.New("invalid appointment date")

	// ErrDateTooFarInFuture is returned when the date exceeds the booking horizon
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrBookingTooSoon is returned when the slot starts before the
	// minimum booking notice
	ErrBookingTooSoon = errors.New("slot starts too soon")

	// ErrSlotNotAvailable is returned when the requested time is not an
	// open slot: outside any availability window, off the slot grid, or
	// blocked by a calendar event
	ErrSlotNotAvailable = errors.New("slot is not available")

	// ErrSlotConflict is returned when another booking claimed the slot
	// first. The loser of the race always gets this error; the attempt is
	// never silently retried on a different slot.
	ErrSlotConflict = errors.New("slot was just taken by another booking")

	// ErrCalendarUnavailable is returned when the calendar cannot be read
	// before booking. Nothing has been written.
	ErrCalendarUnavailable = errors.New("calendar unavailable")

	// ErrTimeout is returned when the flow exceeds its deadline. The
	// outcome is indeterminate: the booking may or may not have been
	// committed, and the client must re-query instead of retrying blindly.
	ErrTimeout = errors.New("booking timed out")

	// ErrInternal is returned on internal usecase errors
	ErrInternal = errors.New("usecase: internal error")
)
