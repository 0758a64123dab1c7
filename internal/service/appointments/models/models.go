package models

import (
	"errors"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/pkg/types"
)

var (
	// ErrInvalidStatus is returned when a status string is not recognized
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request models

// CancelAppointmentRequest asks for a cancellation. Both fields are
// optional; when an email is given it must match the booking.
type CancelAppointmentRequest struct {
	Email  *string `json:"email,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

// UpdateStatusRequest changes an appointment's status (admin only).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListAppointmentsRequest filters the admin listing.
type ListAppointmentsRequest struct {
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"`
}

// ToDomainFilter converts the request into a storage filter.
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// AppointmentResponse is the API view of an appointment.
type AppointmentResponse struct {
	PublicRef           string           `json:"publicRef"`
	Date                string           `json:"date"`
	StartTime           types.TimeString `json:"startTime"`
	EndTime             types.TimeString `json:"endTime"`
	DurationMinutes     int              `json:"durationMinutes"`
	Status              string           `json:"status"`
	FirstName           string           `json:"firstName"`
	LastName            string           `json:"lastName"`
	Email               string           `json:"email"`
	Phone               string           `json:"phone"`
	Reason              *string          `json:"reason,omitempty"`
	CalendarSyncPending bool             `json:"calendarSyncPending,omitempty"`
	CancellationReason  *string          `json:"cancellationReason,omitempty"`
	CancelledAt         *time.Time       `json:"cancelledAt,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// AppointmentListResponse wraps a list of appointments.
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment converts a domain appointment to its API view.
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		PublicRef:           a.PublicRef,
		Date:                a.AppointmentDate.Format(domain.DateFormat),
		StartTime:           a.StartTime,
		EndTime:             a.EndTime,
		DurationMinutes:     a.DurationMinutes,
		Status:              string(a.Status),
		FirstName:           a.FirstName,
		LastName:            a.LastName,
		Email:               a.Email,
		Phone:               a.Phone,
		Reason:              a.Reason,
		CalendarSyncPending: a.CalendarSyncPending,
		CancellationReason:  a.CancellationReason,
		CancelledAt:         a.CancelledAt,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// FromDomainAppointmentList converts a slice of domain appointments.
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	out := make([]*AppointmentResponse, len(list))
	for i, a := range list {
		out[i] = FromDomainAppointment(a)
	}
	return &AppointmentListResponse{Appointments: out, Total: len(out)}
}

// ToDomainStatus parses a status string.
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	status := domain.AppointmentStatus(s)
	for _, valid := range domain.ValidStatuses {
		if status == valid {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}
