package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	apptRepo "github.com/apaddicto/APD-BookingService/internal/infra/storage/appointment"
	calendarClient "github.com/apaddicto/APD-BookingService/internal/integrations/googlecalendar"
	"github.com/apaddicto/APD-BookingService/internal/integrations/notifier"
)

const (
	notifyTimeout = 10 * time.Second

	// mirrorTimeout bounds the post-commit calendar mirror and its
	// bookkeeping writes. Those run detached from the request context: the
	// booking is already committed, and a client disconnect must not lose
	// the deferred-retry flag.
	mirrorTimeout = 15 * time.Second
)

// UseCase books an appointment. The calendar is consulted before the
// transaction, but the database is the sole arbiter of conflicts: two
// attempts for the same slot both pass the calendar check, and exactly one
// survives the insert.
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendarClient  CalendarClient
	notifierClient  Notifier
	txManager       TransactionManager
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarClient CalendarClient,
	notifierClient Notifier,
	txManager TransactionManager,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendarClient:  calendarClient,
		notifierClient:  notifierClient,
		txManager:       txManager,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute books the requested slot.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: date=%s, time=%s, email=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.Email)

	// 1. Validate the request fields
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Validate date and notice against the current time
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.settings.MaxAdvanceDays, uc.settings.Location); err != nil {
		uc.logger.Warn("BookAppointment: date validation failed: %v", err)
		return nil, err
	}
	if err := validateNotice(req.Date, req.StartTime, now, uc.settings.MinNoticeMinutes, uc.settings.Location); err != nil {
		uc.logger.Warn("BookAppointment: notice validation failed: %v", err)
		return nil, err
	}

	// 3. Read the day's calendar. A calendar failure here aborts the
	// booking before anything is written.
	dayStart := startOfDay(req.Date.In(uc.settings.Location))
	events, err := uc.calendarClient.ListEvents(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		if errors.Is(err, calendarClient.ErrTimeout) {
			uc.logger.Error("BookAppointment: calendar read timed out: %v", err)
			return nil, fmt.Errorf("%w: calendar read", ErrTimeout)
		}
		uc.logger.Error("BookAppointment: calendar read failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	// 4. The requested time must be a real slot in the calendar
	windows, busy := splitDayEvents(events, req.Date, uc.settings.Location)
	endTime, err := verifySlot(windows, busy, req.StartTime, uc.settings.SlotDurationMinutes)
	if err != nil {
		uc.logger.Warn("BookAppointment: slot %s %s rejected: %v",
			req.Date.Format(domain.DateFormat), req.StartTime, err)
		return nil, err
	}

	var result *domain.Appointment

	// 5. Claim the slot inside a serializable transaction
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Re-read the day's active appointments under lock. Bookings
		// committed after the calendar snapshot above show up here.
		sameDay, err := uc.appointmentRepo.GetByDateRange(txCtx, domain.AppointmentsFilter{
			StartDate: &dayStart,
			EndDate:   &dayStart,
		})
		if err != nil {
			uc.logger.Error("BookAppointment: failed to load same-day appointments: %v", err)
			return fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
		}

		for _, other := range sameDay {
			iv := dayInterval{start: other.StartTime, end: other.EndTime}
			if iv.overlaps(req.StartTime, endTime) {
				uc.logger.Warn("BookAppointment: slot %s overlaps appointment id=%d", req.StartTime, other.ID)
				return ErrSlotConflict
			}
		}

		// 5.2. Insert. The partial unique index on (date, start_time) is
		// the final arbiter between racing inserts.
		appt := &domain.Appointment{
			PublicRef:       uuid.NewString(),
			AppointmentDate: dayStart,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: uc.settings.SlotDurationMinutes,
			Status:          domain.StatusConfirmed,
			FirstName:       req.FirstName,
			LastName:        req.LastName,
			Email:           req.Email,
			Phone:           req.Phone,
			Reason:          req.Reason,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, apptRepo.ErrSlotTaken) {
				uc.logger.Warn("BookAppointment: lost slot race for %s %s",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotConflict
			}
			uc.logger.Error("BookAppointment: insert failed: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			// The commit may or may not have happened. Surface that
			// explicitly instead of a generic failure.
			uc.logger.Error("BookAppointment: transaction timed out, outcome indeterminate")
			return nil, fmt.Errorf("%w: transaction", ErrTimeout)
		}
		return nil, err
	}

	uc.logger.Info("BookAppointment: created appointment id=%d ref=%s", result.ID, result.PublicRef)

	// 6. Mirror the booking into the calendar. The booking is already
	// committed: a mirror failure is recorded, not rolled back.
	mirrorCtx, cancelMirror := context.WithTimeout(context.Background(), mirrorTimeout)
	uc.mirrorToCalendar(mirrorCtx, result)
	cancelMirror()

	// 7. Fire-and-forget confirmation
	uc.notifyAsync(result)

	return toResponse(result), nil
}

func (uc *UseCase) mirrorToCalendar(ctx context.Context, appt *domain.Appointment) {
	eventID, err := uc.calendarClient.CreateAppointmentEvent(ctx, calendarClient.AppointmentEventInput{
		Date:         appt.AppointmentDate,
		StartTime:    appt.StartTime,
		EndTime:      appt.EndTime,
		PatientName:  appt.PatientName(),
		PatientEmail: appt.Email,
		PatientPhone: appt.Phone,
		Reason:       appt.Reason,
	})
	if err != nil {
		uc.logger.Error("BookAppointment: calendar mirror failed for id=%d, marking sync pending: %v", appt.ID, err)
		appt.CalendarSyncPending = true
		if markErr := uc.appointmentRepo.MarkCalendarSyncPending(ctx, appt.ID); markErr != nil {
			uc.logger.Error("BookAppointment: failed to mark sync pending for id=%d: %v", appt.ID, markErr)
		}
		return
	}

	appt.ExternalEventID = &eventID
	if err := uc.appointmentRepo.SetExternalEventID(ctx, appt.ID, eventID); err != nil {
		uc.logger.Error("BookAppointment: failed to store event id for id=%d: %v", appt.ID, err)
	}
}

func (uc *UseCase) notifyAsync(appt *domain.Appointment) {
	n := notifier.BookingNotification{
		PublicRef:    appt.PublicRef,
		PatientName:  appt.PatientName(),
		PatientEmail: appt.Email,
		PatientPhone: appt.Phone,
		Date:         appt.AppointmentDate,
		StartTime:    appt.StartTime,
		EndTime:      appt.EndTime,
		Reason:       appt.Reason,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifierClient.SendBookingConfirmation(ctx, n); err != nil && !errors.Is(err, notifier.ErrDisabled) {
			uc.logger.Warn("BookAppointment: confirmation notification failed for ref=%s: %v", n.PublicRef, err)
		}
	}()
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		PublicRef:           appt.PublicRef,
		Date:                appt.AppointmentDate,
		StartTime:           appt.StartTime,
		EndTime:             appt.EndTime,
		DurationMinutes:     appt.DurationMinutes,
		Status:              appt.Status,
		FirstName:           appt.FirstName,
		LastName:            appt.LastName,
		Email:               appt.Email,
		Phone:               appt.Phone,
		Reason:              appt.Reason,
		CalendarSyncPending: appt.CalendarSyncPending,
		CreatedAt:           appt.CreatedAt,
	}
}
