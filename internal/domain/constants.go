package domain

// Default booking rules, overridable via the [booking] config section
const (
	DefaultSlotDurationMinutes = 60
	DefaultMinNoticeMinutes    = 120 // book at least 2 hours ahead
	DefaultMaxAdvanceDays      = 30
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 120
	MinNameLength          = 2
	MinPhoneLength         = 10
	MaxReasonLength        = 500
	MaxCancellationReason  = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AvailabilityTitleMarkers are matched case-insensitively against event
// titles when neither tags nor transparency classify an event. The practice
// marks open windows in its calendar as "🟢 DISPONIBLE".
var AvailabilityTitleMarkers = []string{"disponible", "available", "🟢"}

// AppointmentTitleMarkers recognize consultations created by hand.
var AppointmentTitleMarkers = []string{"rdv", "rendez-vous", "consultation", "🏥"}

// InactiveStatuses no longer claim their slot and are excluded when
// computing availability.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses still claim their slot.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// ReconcilableStatuses are checked against the external calendar by the
// reconciliation sweep.
var ReconcilableStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// ValidStatuses enumerates every status accepted from the admin API.
var ValidStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
