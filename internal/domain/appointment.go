package domain

import (
	"time"

	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a booked consultation. Rows are never hard-deleted:
// cancellation is a status transition so history stays auditable.
type Appointment struct {
	ID              int64
	PublicRef       string // uuid exposed in URLs and cancellation links
	AppointmentDate time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Patient contact data, denormalized on the row
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Reason    *string

	// Calendar mirror state. ExternalEventID is set once the opaque event
	// exists in Google Calendar; CalendarSyncPending marks a failed mirror
	// that the reconcile sweep retries later.
	ExternalEventID     *string
	CalendarSyncPending bool

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PatientName returns the display name used in calendar events and emails.
func (a *Appointment) PatientName() string {
	return a.FirstName + " " + a.LastName
}

// IsActive reports whether the appointment still claims its slot.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// CanBeCancelled reports whether a cancellation transition is allowed.
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// IsCancelled reports whether the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// AppointmentsFilter filters appointment range queries.
type AppointmentsFilter struct {
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *AppointmentStatus
	IncludeInactive bool // include cancelled and no-show rows
}
