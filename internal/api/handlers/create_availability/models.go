package create_availability

import (
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/internal/service/availability"
	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// CreateWindowRequest is the HTTP request model.
type CreateWindowRequest struct {
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "09:00"
	EndTime   string  `json:"endTime"`   // "12:00"
	Title     *string `json:"title,omitempty"`
}

// ToServiceRequest converts the HTTP request into the service model.
func (r *CreateWindowRequest) ToServiceRequest() (*availability.CreateWindowRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &availability.CreateWindowRequest{
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Title:     r.Title,
	}, nil
}
