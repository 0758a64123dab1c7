package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when no appointment matches the reference
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrCannotCancel is returned when the appointment is not in a
	// cancellable state
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrInvalidStatus is returned on an unknown status value
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidTransition is returned when the requested status change is
	// not an allowed transition
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
