package get_available_slots

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func event(kind domain.EventKind, date time.Time, start, end string) domain.CalendarEvent {
	s, _ := time.Parse("15:04", start)
	e, _ := time.Parse("15:04", end)
	return domain.CalendarEvent{
		ID:        "ev-" + start,
		Kind:      kind,
		StartTime: time.Date(date.Year(), date.Month(), date.Day(), s.Hour(), s.Minute(), 0, 0, time.UTC),
		EndTime:   time.Date(date.Year(), date.Month(), date.Day(), e.Hour(), e.Minute(), 0, 0, time.UTC),
	}
}

func slotStarts(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.StartTime.String()
	}
	return out
}

func TestGenerateSlotsForDay_PlainWindow(t *testing.T) {
	date := day(2026, 9, 10)
	windows := []dayInterval{{start: "09:00", end: "12:00"}}

	slots, err := generateSlotsForDay(date, windows, nil, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotStarts(slots))
	for _, s := range slots {
		assert.Equal(t, 60, s.DurationMinutes)
	}
}

func TestGenerateSlotsForDay_BusyIntervalSuppressesButDoesNotShiftGrid(t *testing.T) {
	// Window 09:00-12:00 with a 10:00-10:30 busy block: 10:00 is
	// suppressed and the grid stays anchored at 09:00, so no 10:30 slot
	// appears.
	date := day(2026, 9, 10)
	windows := []dayInterval{{start: "09:00", end: "12:00"}}
	busy := []dayInterval{{start: "10:00", end: "10:30"}}

	slots, err := generateSlotsForDay(date, windows, busy, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "11:00"}, slotStarts(slots))
}

func TestGenerateSlotsForDay_TrailingRemainderDiscarded(t *testing.T) {
	date := day(2026, 9, 10)
	windows := []dayInterval{{start: "09:00", end: "10:30"}}

	slots, err := generateSlotsForDay(date, windows, nil, 60)
	require.NoError(t, err)

	// 10:00-11:00 would overrun the window
	assert.Equal(t, []string{"09:00"}, slotStarts(slots))
}

func TestGenerateSlotsForDay_TouchingBusyBoundaryDoesNotConflict(t *testing.T) {
	date := day(2026, 9, 10)
	windows := []dayInterval{{start: "09:00", end: "12:00"}}
	busy := []dayInterval{{start: "10:00", end: "11:00"}}

	slots, err := generateSlotsForDay(date, windows, busy, 60)
	require.NoError(t, err)

	// 09:00-10:00 ends exactly where the busy block starts; 11:00-12:00
	// starts exactly where it ends
	assert.Equal(t, []string{"09:00", "11:00"}, slotStarts(slots))
}

func TestGenerateSlotsForDay_OverlappingWindowsDeduplicate(t *testing.T) {
	date := day(2026, 9, 10)
	windows := []dayInterval{
		{start: "09:00", end: "12:00"},
		{start: "09:00", end: "11:00"},
	}

	slots, err := generateSlotsForDay(date, windows, nil, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotStarts(slots))
}

func TestGenerateSlotsForDay_MultipleWindowsSorted(t *testing.T) {
	date := day(2026, 9, 10)
	windows := []dayInterval{
		{start: "14:00", end: "16:00"},
		{start: "09:00", end: "10:00"},
	}

	slots, err := generateSlotsForDay(date, windows, nil, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "14:00", "15:00"}, slotStarts(slots))
}

func TestGenerateSlotsForDay_Deterministic(t *testing.T) {
	date := day(2026, 9, 10)
	windows := []dayInterval{
		{start: "08:30", end: "12:15"},
		{start: "13:45", end: "18:00"},
	}
	busy := []dayInterval{
		{start: "09:30", end: "09:45"},
		{start: "15:00", end: "16:10"},
	}

	first, err := generateSlotsForDay(date, windows, busy, 45)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := generateSlotsForDay(date, windows, busy, 45)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerateSlotsForDay_NoOverlapWithBusyProperty(t *testing.T) {
	// Randomized (seeded, reproducible): whatever the windows and busy
	// intervals, no emitted slot may overlap a busy interval or escape its
	// window.
	rng := rand.New(rand.NewSource(1))
	date := day(2026, 9, 10)
	durations := []int{15, 30, 45, 60, 90}

	minuteTS := func(m int) types.TimeString {
		if m >= 24*60 {
			return types.EndOfDay
		}
		return types.TimeString(fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	randInterval := func() dayInterval {
		start := rng.Intn(24*60 - 5)
		end := start + 5 + rng.Intn(4*60)
		return dayInterval{start: minuteTS(start), end: minuteTS(end)}
	}

	for i := 0; i < 200; i++ {
		windows := make([]dayInterval, 1+rng.Intn(3))
		for j := range windows {
			windows[j] = randInterval()
		}
		busy := make([]dayInterval, rng.Intn(5))
		for j := range busy {
			busy[j] = randInterval()
		}
		duration := durations[rng.Intn(len(durations))]

		slots, err := generateSlotsForDay(date, windows, busy, duration)
		require.NoError(t, err)

		for _, s := range slots {
			for _, b := range busy {
				assert.False(t, b.overlaps(s.StartTime, s.EndTime),
					"case %d: slot %s-%s overlaps busy %s-%s", i, s.StartTime, s.EndTime, b.start, b.end)
			}

			inWindow := false
			for _, w := range windows {
				if !s.StartTime.IsBefore(w.start) && !s.EndTime.IsAfter(w.end) {
					inWindow = true
					break
				}
			}
			assert.True(t, inWindow, "case %d: slot %s-%s outside every window", i, s.StartTime, s.EndTime)
		}
	}
}

func TestGenerateSlotsForDay_LastSlotEndsAtMidnight(t *testing.T) {
	date := day(2026, 9, 10)
	windows := []dayInterval{{start: "22:00", end: types.EndOfDay}}

	slots, err := generateSlotsForDay(date, windows, nil, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"22:00", "23:00"}, slotStarts(slots))
	assert.Equal(t, types.EndOfDay, slots[1].EndTime)
}

func TestSplitEventsByDay_MidnightEndClampsToEndOfDay(t *testing.T) {
	date := day(2026, 9, 10)
	ev := domain.CalendarEvent{
		ID:        "ev-night",
		Kind:      domain.EventKindAvailability,
		StartTime: time.Date(2026, 9, 10, 23, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
	}

	avail, _ := splitEventsByDay([]domain.CalendarEvent{ev}, time.UTC)

	key := date.Format(domain.DateFormat)
	require.Len(t, avail[key], 1)
	assert.Equal(t, types.TimeString("23:00"), avail[key][0].start)
	assert.Equal(t, types.EndOfDay, avail[key][0].end)

	// The clamped window still yields its last slot
	slots, err := generateSlotsForDay(date, avail[key], nil, 60)
	require.NoError(t, err)
	assert.Equal(t, []string{"23:00"}, slotStarts(slots))
}

func TestSplitEventsByDay_Classification(t *testing.T) {
	date := day(2026, 9, 10)
	events := []domain.CalendarEvent{
		event(domain.EventKindAvailability, date, "09:00", "12:00"),
		event(domain.EventKindAppointment, date, "10:00", "11:00"),
		event(domain.EventKindOther, date, "14:00", "15:00"),
	}

	avail, busy := splitEventsByDay(events, time.UTC)

	key := "2026-09-10"
	require.Len(t, avail[key], 1)
	assert.Equal(t, types.TimeString("09:00"), avail[key][0].start)
	assert.Equal(t, types.TimeString("12:00"), avail[key][0].end)

	// Appointment and Other both block
	require.Len(t, busy[key], 2)
}

func TestSplitEventsByDay_SkipsZeroLengthEvents(t *testing.T) {
	date := day(2026, 9, 10)
	events := []domain.CalendarEvent{
		event(domain.EventKindAvailability, date, "09:00", "09:00"),
	}

	avail, busy := splitEventsByDay(events, time.UTC)
	assert.Empty(t, avail)
	assert.Empty(t, busy)
}

func TestFilterByNotice(t *testing.T) {
	date := day(2026, 9, 10)
	slots := []domain.Slot{
		{Date: date, StartTime: "09:00", EndTime: "10:00", DurationMinutes: 60},
		{Date: date, StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60},
		{Date: date, StartTime: "11:00", EndTime: "12:00", DurationMinutes: 60},
	}

	// 08:30 + 120min notice = 10:30 cutoff; only 11:00 survives
	now := time.Date(2026, 9, 10, 8, 30, 0, 0, time.UTC)
	kept := filterByNotice(slots, now, 120, time.UTC)
	assert.Equal(t, []string{"11:00"}, slotStarts(kept))

	// A future day is untouched
	dayBefore := time.Date(2026, 9, 9, 23, 0, 0, 0, time.UTC)
	kept = filterByNotice(slots, dayBefore, 120, time.UTC)
	assert.Len(t, kept, 3)
}

func TestAppointmentIntervals(t *testing.T) {
	date := day(2026, 9, 10)
	appts := []*domain.Appointment{
		{AppointmentDate: date, StartTime: "09:00", EndTime: "10:00"},
		{AppointmentDate: date.AddDate(0, 0, 1), StartTime: "14:00", EndTime: "15:00"},
	}

	busy := appointmentIntervals(appts)
	require.Len(t, busy["2026-09-10"], 1)
	require.Len(t, busy["2026-09-11"], 1)
	assert.Equal(t, types.TimeString("14:00"), busy["2026-09-11"][0].start)
}
