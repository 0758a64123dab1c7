package get_available_slots

import (
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
)

// Request describes an availability query. Both dates are optional; the
// use case defaults and clamps them to the bookable horizon.
type Request struct {
	StartDate *time.Time // first day to include (date only)
	EndDate   *time.Time // last day to include (date only)

	// SlotDurationMinutes overrides the configured duration for this query
	// only. Bookings are still validated against the configured grid.
	SlotDurationMinutes *int
}

// Response carries the computed free slots, grouped by day.
type Response struct {
	StartDate      time.Time
	EndDate        time.Time
	SlotDuration   int                      // minutes
	Timezone       string                   // IANA name the times are expressed in
	SlotsByDate    map[string][]domain.Slot // date key -> slots, sorted by start time
	AvailableDates []string                 // sorted dates with at least one free slot
	TotalSlots     int
	GeneratedAt    time.Time
}

// Settings is the slot-generation configuration, fixed at startup.
type Settings struct {
	SlotDurationMinutes int
	MinNoticeMinutes    int
	MaxAdvanceDays      int
	Location            *time.Location
}
