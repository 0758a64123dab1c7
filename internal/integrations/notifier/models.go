package notifier

import (
	"time"

	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// BookingNotification carries everything needed to confirm a booking to
// the patient.
type BookingNotification struct {
	PublicRef    string
	PatientName  string
	PatientEmail string
	PatientPhone string
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Reason       *string
}

// CancellationNotification informs the patient their appointment was
// cancelled, with the recorded reason.
type CancellationNotification struct {
	PublicRef    string
	PatientName  string
	PatientEmail string
	Date         time.Time
	StartTime    types.TimeString
	Reason       string
}
