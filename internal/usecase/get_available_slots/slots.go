package get_available_slots

import (
	"fmt"
	"sort"
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

// splitEventsByDay buckets calendar events into per-day availability
// windows and busy intervals, keyed by date. An event spanning midnight is
// clamped to the day it starts on, ending at "24:00".
func splitEventsByDay(events []domain.CalendarEvent, loc *time.Location) (avail, busy map[string][]dayInterval) {
	avail = make(map[string][]dayInterval)
	busy = make(map[string][]dayInterval)

	for _, ev := range events {
		start := ev.StartTime.In(loc)
		end := ev.EndTime.In(loc)
		if !end.After(start) {
			continue
		}

		key := start.Format(domain.DateFormat)
		iv := dayInterval{start: types.NewTimeString(start)}
		if end.Format(domain.DateFormat) != key {
			iv.end = types.EndOfDay
		} else {
			iv.end = types.NewTimeString(end)
		}

		if ev.Kind == domain.EventKindAvailability {
			avail[key] = append(avail[key], iv)
		} else {
			busy[key] = append(busy[key], iv)
		}
	}

	return avail, busy
}

// appointmentIntervals converts booked appointments into per-day busy
// intervals. The repository already excludes cancelled and no-show rows.
func appointmentIntervals(appointments []*domain.Appointment) map[string][]dayInterval {
	busy := make(map[string][]dayInterval)
	for _, appt := range appointments {
		key := appt.AppointmentDate.Format(domain.DateFormat)
		busy[key] = append(busy[key], dayInterval{start: appt.StartTime, end: appt.EndTime})
	}
	return busy
}

// generateSlotsForDay slices the day's availability windows into slots of
// fixed duration. The grid is anchored at each window's start and advances
// by the slot duration regardless of conflicts: a busy interval suppresses
// the slots it overlaps but never shifts the grid. A trailing remainder
// shorter than one slot is discarded.
func generateSlotsForDay(date time.Time, windows, busy []dayInterval, slotDuration int) ([]domain.Slot, error) {
	seen := make(map[string]struct{})
	slots := make([]domain.Slot, 0)

	for _, w := range windows {
		cur := w.start
		curMin, err := w.start.Minutes()
		if err != nil {
			return nil, err
		}
		for cur.IsBefore(w.end) {
			end, ok := slotEnd(curMin, slotDuration)
			if !ok || end.IsAfter(w.end) {
				// slot runs off the day or past the window
				break
			}

			if !overlapsAny(cur, end, busy) {
				if _, dup := seen[cur.String()]; !dup {
					seen[cur.String()] = struct{}{}
					slots = append(slots, domain.Slot{
						Date:            date,
						StartTime:       cur,
						EndTime:         end,
						DurationMinutes: slotDuration,
					})
				}
			}

			cur = end
			curMin += slotDuration
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots, nil
}

// slotEnd returns the end of a slot starting at startMinutes, as HH:MM, or
// "24:00" when it lands exactly on midnight. ok is false when the slot runs
// past the end of the day.
func slotEnd(startMinutes, duration int) (types.TimeString, bool) {
	m := startMinutes + duration
	if m > 24*60 {
		return "", false
	}
	if m == 24*60 {
		return types.EndOfDay, true
	}
	return types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60)), true
}

func overlapsAny(start, end types.TimeString, busy []dayInterval) bool {
	for _, b := range busy {
		if b.overlaps(start, end) {
			return true
		}
	}
	return false
}

// filterByNotice drops slots starting before now plus the minimum booking
// notice. Days after today are unaffected.
func filterByNotice(slots []domain.Slot, now time.Time, minNoticeMinutes int, loc *time.Location) []domain.Slot {
	cutoff := now.In(loc).Add(time.Duration(minNoticeMinutes) * time.Minute)
	cutoffDate := cutoff.Format(domain.DateFormat)
	cutoffTime := types.NewTimeString(cutoff)

	kept := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		key := s.Date.Format(domain.DateFormat)
		if key < cutoffDate {
			continue
		}
		if key == cutoffDate && s.StartTime.IsBefore(cutoffTime) {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}
