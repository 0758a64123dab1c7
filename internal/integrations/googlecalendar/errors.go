package googlecalendar

import "errors"

var (
	// ErrUnavailable is returned when the Calendar API cannot be reached
	// or answers with a server error
	ErrUnavailable = errors.New("googlecalendar client: calendar unavailable")

	// ErrTimeout is returned when a calendar call exceeds its deadline.
	// The outcome of the remote operation is indeterminate.
	ErrTimeout = errors.New("googlecalendar client: request timed out")

	// ErrEventNotFound is returned when an event id no longer exists
	ErrEventNotFound = errors.New("googlecalendar client: event not found")

	// ErrInvalidResponse is returned when the API answer cannot be used
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("googlecalendar client: internal error")
)
