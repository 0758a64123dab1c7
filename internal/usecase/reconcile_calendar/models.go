package reconcile_calendar

import "time"

// Result summarizes one reconcile sweep.
type Result struct {
	Checked    int      // appointments whose mirror was verified
	Cancelled  int      // appointments cancelled due to external deletion
	FreedSlots []string // "YYYY-MM-DD HH:MM" keys of freed slots
	Mirrored   int      // pending mirrors created on retry
	Errors     []string // per-appointment failures, sweep continued past them

	StartedAt time.Time
	Duration  time.Duration
}

// Settings is the sweep configuration, fixed at startup.
type Settings struct {
	WindowDays   int // how far ahead the sweep looks
	Location     *time.Location
	PracticeName string
}
