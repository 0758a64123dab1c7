package availability

import (
	"time"

	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// CreateWindowRequest describes a new availability window.
type CreateWindowRequest struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Title     *string
}

// WindowResponse is the created window as returned to the admin.
type WindowResponse struct {
	EventID   string           `json:"eventId"`
	Date      string           `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}
