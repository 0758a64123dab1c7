package get_available_slots

import (
	"fmt"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
)

// resolveRange defaults and clamps the requested range to the bookable
// horizon [today, today+maxAdvanceDays]. A start date past the horizon is
// an error; everything else is clamped silently.
func resolveRange(req *Request, now time.Time, maxAdvanceDays int, loc *time.Location) (start, end time.Time, err error) {
	today := startOfDay(now.In(loc))
	horizon := today.AddDate(0, 0, maxAdvanceDays)

	start = today
	if req.StartDate != nil {
		start = startOfDay(req.StartDate.In(loc))
	}
	end = horizon
	if req.EndDate != nil {
		end = startOfDay(req.EndDate.In(loc))
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start %s after end %s",
			ErrInvalidDateRange, start.Format(domain.DateFormat), end.Format(domain.DateFormat))
	}
	if start.After(horizon) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bookings open up to %s",
			ErrDateTooFarInFuture, horizon.Format(domain.DateFormat))
	}

	if start.Before(today) {
		start = today
	}
	if end.After(horizon) {
		end = horizon
	}

	return start, end, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
