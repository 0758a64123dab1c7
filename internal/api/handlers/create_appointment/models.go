package create_appointment

import (
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	bookAppointment "github.com/apaddicto/APD-BookingService/internal/usecase/book_appointment"
	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// CreateAppointmentRequest is the HTTP request model.
type CreateAppointmentRequest struct {
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Reason    *string `json:"reason,omitempty"`
}

// AppointmentResponse is the HTTP response model.
type AppointmentResponse struct {
	PublicRef           string  `json:"publicRef"`
	Date                string  `json:"date"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	DurationMinutes     int     `json:"durationMinutes"`
	Status              string  `json:"status"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	Reason              *string `json:"reason,omitempty"`
	CalendarSyncPending bool    `json:"calendarSyncPending,omitempty"`
	CreatedAt           string  `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		Date:      date,
		StartTime: startTime,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Reason:    r.Reason,
	}, nil
}

// FromUseCaseResponse converts the use case response to the HTTP model.
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		PublicRef:           resp.PublicRef,
		Date:                resp.Date.Format(domain.DateFormat),
		StartTime:           resp.StartTime.String(),
		EndTime:             resp.EndTime.String(),
		DurationMinutes:     resp.DurationMinutes,
		Status:              string(resp.Status),
		FirstName:           resp.FirstName,
		LastName:            resp.LastName,
		Email:               resp.Email,
		Phone:               resp.Phone,
		Reason:              resp.Reason,
		CalendarSyncPending: resp.CalendarSyncPending,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
	}
}
