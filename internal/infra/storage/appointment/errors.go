package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when no row matches
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken is returned when the partial unique index on
	// (appointment_date, start_time) rejects an insert: a concurrent
	// booking already claimed the slot
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrBuildQuery is returned when building a SQL statement fails
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL statement fails
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
