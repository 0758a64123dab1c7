package get_available_slots

import (
	"strconv"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	getSlots "github.com/apaddicto/APD-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse is one bookable slot.
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailabilityResponse is the HTTP response model.
type AvailabilityResponse struct {
	StartDate      string                    `json:"startDate"`
	EndDate        string                    `json:"endDate"`
	SlotDuration   int                       `json:"slotDurationMinutes"`
	Timezone       string                    `json:"timezone"`
	SlotsByDate    map[string][]SlotResponse `json:"slotsByDate"`
	AvailableDates []string                  `json:"availableDates"`
	TotalSlots     int                       `json:"totalSlots"`
	GeneratedAt    time.Time                 `json:"generatedAt"`
}

// parseQuery parses the optional startDate/endDate/slotDuration query params.
// Range bounds and the duration override are validated by the use case.
func parseQuery(startDate, endDate, slotDuration string) (*getSlots.Request, error) {
	req := &getSlots.Request{}

	if startDate != "" {
		d, err := time.Parse(domain.DateFormat, startDate)
		if err != nil {
			return nil, err
		}
		req.StartDate = &d
	}
	if endDate != "" {
		d, err := time.Parse(domain.DateFormat, endDate)
		if err != nil {
			return nil, err
		}
		req.EndDate = &d
	}
	if slotDuration != "" {
		minutes, err := strconv.Atoi(slotDuration)
		if err != nil {
			return nil, err
		}
		req.SlotDurationMinutes = &minutes
	}

	return req, nil
}

// FromUseCaseResponse converts the use case response to the HTTP model.
func FromUseCaseResponse(resp *getSlots.Response) *AvailabilityResponse {
	slotsByDate := make(map[string][]SlotResponse, len(resp.SlotsByDate))
	for date, slots := range resp.SlotsByDate {
		out := make([]SlotResponse, len(slots))
		for i, s := range slots {
			out[i] = SlotResponse{
				StartTime:       s.StartTime.String(),
				EndTime:         s.EndTime.String(),
				DurationMinutes: s.DurationMinutes,
			}
		}
		slotsByDate[date] = out
	}

	return &AvailabilityResponse{
		StartDate:      resp.StartDate.Format(domain.DateFormat),
		EndDate:        resp.EndDate.Format(domain.DateFormat),
		SlotDuration:   resp.SlotDuration,
		Timezone:       resp.Timezone,
		SlotsByDate:    slotsByDate,
		AvailableDates: resp.AvailableDates,
		TotalSlots:     resp.TotalSlots,
		GeneratedAt:    resp.GeneratedAt,
	}
}
