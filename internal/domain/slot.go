package domain

import (
	"time"

	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// Slot is a derived, bookable interval of fixed duration. Slots are never
// persisted; they are recomputed from calendar events and appointments on
// every availability query.
type Slot struct {
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// Key identifies a slot for deduplication and map grouping.
func (s Slot) Key() string {
	return s.Date.Format(DateFormat) + "T" + s.StartTime.String()
}

// Before orders slots by (date, startTime).
func (s Slot) Before(other Slot) bool {
	sd, od := s.Date.Format(DateFormat), other.Date.Format(DateFormat)
	if sd != od {
		return sd < od
	}
	return s.StartTime.IsBefore(other.StartTime)
}
