package get_available_slots

import (
	"context"
	"fmt"
	"sort"

	"github.com/apaddicto/APD-BookingService/internal/domain"
)

// UseCase computes the bookable slots over a date range. Slots are derived
// on every call from the external calendar and the appointments table;
// nothing here is cached or persisted.
type UseCase struct {
	calendarClient  CalendarClient
	appointmentRepo AppointmentRepository
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	calendarClient CalendarClient,
	appointmentRepo AppointmentRepository,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarClient:  calendarClient,
		appointmentRepo: appointmentRepo,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute computes available slots for the requested range.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Resolve and clamp the requested range to the booking horizon
	now := uc.timeProvider.Now()
	start, end, err := resolveRange(req, now, uc.settings.MaxAdvanceDays, uc.settings.Location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid range: %v", err)
		return nil, err
	}

	slotDuration := uc.settings.SlotDurationMinutes
	if req.SlotDurationMinutes != nil {
		slotDuration = *req.SlotDurationMinutes
		if slotDuration < domain.MinSlotDurationMinutes || slotDuration > domain.MaxSlotDurationMinutes {
			return nil, fmt.Errorf("%w: slot duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
	}

	uc.logger.Info("GetAvailableSlots: range %s..%s, duration %dmin",
		start.Format(domain.DateFormat), end.Format(domain.DateFormat), slotDuration)

	// 2. Read the calendar for the whole range. The calendar is the source
	// of truth for availability; if it cannot be read, the answer is an
	// error, never a stale or empty schedule presented as real.
	rangeEnd := end.AddDate(0, 0, 1)
	events, err := uc.calendarClient.ListEvents(ctx, start, rangeEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: calendar read failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	// 3. Read active appointments over the same range
	appointments, err := uc.appointmentRepo.GetByDateRange(ctx, domain.AppointmentsFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load appointments: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// 4. Bucket events and appointments into per-day intervals
	avail, busy := splitEventsByDay(events, uc.settings.Location)
	for key, intervals := range appointmentIntervals(appointments) {
		busy[key] = append(busy[key], intervals...)
	}

	// 5. Slice each day's availability windows into slots
	slotsByDate := make(map[string][]domain.Slot)
	total := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(domain.DateFormat)
		windows := avail[key]
		if len(windows) == 0 {
			continue
		}

		daySlots, err := generateSlotsForDay(day, windows, busy[key], slotDuration)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: slot generation failed for %s: %v", key, err)
			return nil, fmt.Errorf("%w: slot generation for %s: %v", ErrInternal, key, err)
		}

		// 6. Enforce the minimum booking notice
		daySlots = filterByNotice(daySlots, now, uc.settings.MinNoticeMinutes, uc.settings.Location)
		if len(daySlots) == 0 {
			continue
		}

		slotsByDate[key] = daySlots
		total += len(daySlots)
	}

	// 7. Assemble the response
	availableDates := make([]string, 0, len(slotsByDate))
	for key := range slotsByDate {
		availableDates = append(availableDates, key)
	}
	sort.Strings(availableDates)

	uc.logger.Info("GetAvailableSlots: %d slots over %d days", total, len(availableDates))

	return &Response{
		StartDate:      start,
		EndDate:        end,
		SlotDuration:   slotDuration,
		Timezone:       uc.settings.Location.String(),
		SlotsByDate:    slotsByDate,
		AvailableDates: availableDates,
		TotalSlots:     total,
		GeneratedAt:    now,
	}, nil
}
