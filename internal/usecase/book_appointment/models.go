package book_appointment

import (
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// Request describes a booking attempt from a patient.
type Request struct {
	Date      time.Time
	StartTime types.TimeString
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Reason    *string
}

// Response is the committed appointment as returned to the patient.
type Response struct {
	PublicRef       string
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          domain.AppointmentStatus
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Reason          *string

	// CalendarSyncPending is true when the booking committed but its
	// calendar mirror failed; the reconcile sweep retries it later
	CalendarSyncPending bool

	CreatedAt time.Time
}

// Settings is the booking configuration, fixed at startup.
type Settings struct {
	SlotDurationMinutes int
	MinNoticeMinutes    int
	MaxAdvanceDays      int
	Location            *time.Location
	PracticeName        string
}
