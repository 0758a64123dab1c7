package book_appointment

import (
	"fmt"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// dayInterval is a [start, end) interval within a single day.
type dayInterval struct {
	start types.TimeString
	end   types.TimeString
}

func (i dayInterval) overlaps(start, end types.TimeString) bool {
	// Strict overlap: touching boundaries do not conflict
	return i.start.IsBefore(end) && start.IsBefore(i.end)
}

// splitDayEvents buckets the given date's calendar events into
// availability windows and busy intervals. Events on other dates are
// ignored; an event spanning midnight is clamped to the day it starts on,
// ending at "24:00".
func splitDayEvents(events []domain.CalendarEvent, date time.Time, loc *time.Location) (windows, busy []dayInterval) {
	key := date.In(loc).Format(domain.DateFormat)

	for _, ev := range events {
		start := ev.StartTime.In(loc)
		end := ev.EndTime.In(loc)
		if !end.After(start) || start.Format(domain.DateFormat) != key {
			continue
		}

		iv := dayInterval{start: types.NewTimeString(start)}
		if end.Format(domain.DateFormat) != key {
			iv.end = types.EndOfDay
		} else {
			iv.end = types.NewTimeString(end)
		}

		if ev.Kind == domain.EventKindAvailability {
			windows = append(windows, iv)
		} else {
			busy = append(busy, iv)
		}
	}

	return windows, busy
}

// verifySlot checks that the requested time is a real slot: it must lie on
// the slot grid of an availability window, fit inside it, and overlap no
// busy calendar event. The database's own conflicts are checked separately,
// inside the booking transaction.
func verifySlot(windows, busy []dayInterval, startTime types.TimeString, slotDuration int) (types.TimeString, error) {
	startMin, err := startTime.Minutes()
	if err != nil {
		return "", err
	}

	endMin := startMin + slotDuration
	if endMin > 24*60 {
		// runs past the end of the day
		return "", ErrSlotNotAvailable
	}
	endTime := types.EndOfDay
	if endMin < 24*60 {
		endTime = types.TimeString(fmt.Sprintf("%02d:%02d", endMin/60, endMin%60))
	}

	onGrid := false
	for _, w := range windows {
		if startTime.IsBefore(w.start) || endTime.IsAfter(w.end) {
			continue
		}
		wStart, err := w.start.Minutes()
		if err != nil {
			return "", err
		}
		if (startMin-wStart)%slotDuration == 0 {
			onGrid = true
			break
		}
	}
	if !onGrid {
		return "", ErrSlotNotAvailable
	}

	for _, b := range busy {
		if b.overlaps(startTime, endTime) {
			return "", ErrSlotNotAvailable
		}
	}

	return endTime, nil
}
