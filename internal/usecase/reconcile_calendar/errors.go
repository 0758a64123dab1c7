package reconcile_calendar

import "errors"

var (
	// ErrInternal is returned when the sweep cannot even start, e.g. the
	// initial appointment query fails. Per-appointment failures do not
	// abort the sweep; they are collected in the result instead.
	ErrInternal = errors.New("usecase: internal error")
)
