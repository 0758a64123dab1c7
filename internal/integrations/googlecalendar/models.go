package googlecalendar

import (
	"time"

	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// AppointmentEventInput describes the opaque mirror event created for a
// confirmed booking.
type AppointmentEventInput struct {
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	PatientName  string
	PatientEmail string
	PatientPhone string
	Reason       *string
}

// AvailabilityEventInput describes a transparent availability window
// created by staff through the admin API.
type AvailabilityEventInput struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Title     *string
}
