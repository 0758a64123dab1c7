package domain

import (
	"strings"
	"time"
)

// EventKind classifies an external calendar event once, at ingestion,
// instead of re-matching title strings at every call site.
type EventKind string

const (
	// EventKindAvailability marks a window open for bookings
	EventKindAvailability EventKind = "availability"

	// EventKindAppointment marks a consultation created by this service
	// or recognized as one by its title
	EventKindAppointment EventKind = "appointment"

	// EventKindOther covers everything else (personal events, unparseable
	// entries). Other events block the calendar like appointments do.
	EventKindOther EventKind = "other"
)

// Transparency values carried by calendar events.
const (
	TransparencyOpaque      = "opaque"
	TransparencyTransparent = "transparent"
)

// Extended-property tags the service writes on its own events.
const (
	TagAvailabilitySlot = "isAvailabilitySlot"
	TagAppointment      = "isAppointment"
)

// CalendarEvent is the classified view of an external calendar entry.
// The core never mutates these; they are created and deleted in the
// external calendar, by staff or by the booking flow.
type CalendarEvent struct {
	ID        string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Kind      EventKind
}

// IsBusy reports whether the event blocks slots. Everything that is not an
// availability window counts as busy.
func (e *CalendarEvent) IsBusy() bool {
	return e.Kind != EventKindAvailability
}

// Overlaps reports strict interval overlap with [start, end).
// Events that merely touch at a boundary do not overlap.
func (e *CalendarEvent) Overlaps(start, end time.Time) bool {
	return e.StartTime.Before(end) && e.EndTime.After(start)
}

// ClassifyEvent derives the EventKind of a raw calendar entry.
//
// Precedence: explicit private tags first, then an explicit transparency
// flag, then a case-insensitive keyword match on the title. An event with
// no availability marker is busy by default.
func ClassifyEvent(title, transparency string, tags map[string]string) EventKind {
	// 1. Explicit tags written by this service win over everything.
	if tags[TagAvailabilitySlot] == "true" {
		return EventKindAvailability
	}
	if tags[TagAppointment] == "true" || tags[TagAvailabilitySlot] == "false" {
		return EventKindAppointment
	}

	// 2. Transparent events never block the calendar; staff create
	// availability windows as transparent entries.
	if transparency == TransparencyTransparent {
		return EventKindAvailability
	}

	// 3. Keyword fallback for events created by hand.
	lower := strings.ToLower(title)
	for _, marker := range AvailabilityTitleMarkers {
		if strings.Contains(lower, marker) {
			return EventKindAvailability
		}
	}
	for _, marker := range AppointmentTitleMarkers {
		if strings.Contains(lower, marker) {
			return EventKindAppointment
		}
	}

	return EventKindOther
}
