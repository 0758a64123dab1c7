package reconcile_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	calendarClient "github.com/apaddicto/APD-BookingService/internal/integrations/googlecalendar"
	"github.com/apaddicto/APD-BookingService/internal/integrations/notifier"
)

// externalDeletionReason is recorded on appointments cancelled because
// their calendar event disappeared.
const externalDeletionReason = "external deletion detected"

const notifyTimeout = 10 * time.Second

// UseCase reconciles the appointments table against the external calendar.
// Staff delete events by hand; the sweep notices and cancels the matching
// appointments so their slots become bookable again. It also retries
// calendar mirrors that failed at booking time.
//
// The sweep is idempotent: appointments already cancelled are not selected
// again, and a sweep over a consistent state changes nothing.
type UseCase struct {
	appointmentRepo AppointmentRepository
	calendarClient  CalendarClient
	notifierClient  Notifier
	settings        Settings
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	calendarClient CalendarClient,
	notifierClient Notifier,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		calendarClient:  calendarClient,
		notifierClient:  notifierClient,
		settings:        settings,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute runs one sweep and reports what it did.
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	now := uc.timeProvider.Now()
	result := &Result{StartedAt: now}

	start := startOfDay(now.In(uc.settings.Location))
	end := start.AddDate(0, 0, uc.settings.WindowDays)

	uc.logger.Info("ReconcileCalendar: sweep %s..%s",
		start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	// 1. Verify mirrors of upcoming appointments
	appointments, err := uc.appointmentRepo.GetReconcilable(ctx, start, end)
	if err != nil {
		uc.logger.Error("ReconcileCalendar: failed to load appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}

	for _, appt := range appointments {
		if err := uc.reconcileOne(ctx, appt, result); err != nil {
			// One bad appointment never aborts the sweep
			msg := fmt.Sprintf("appointment id=%d ref=%s: %v", appt.ID, appt.PublicRef, err)
			uc.logger.Error("ReconcileCalendar: %s", msg)
			result.Errors = append(result.Errors, msg)
		}
	}

	// 2. Retry mirrors that failed at booking time
	pending, err := uc.appointmentRepo.GetPendingCalendarSync(ctx)
	if err != nil {
		msg := fmt.Sprintf("failed to load pending mirrors: %v", err)
		uc.logger.Error("ReconcileCalendar: %s", msg)
		result.Errors = append(result.Errors, msg)
	} else {
		for _, appt := range pending {
			if err := uc.retryMirror(ctx, appt); err != nil {
				msg := fmt.Sprintf("mirror retry id=%d ref=%s: %v", appt.ID, appt.PublicRef, err)
				uc.logger.Warn("ReconcileCalendar: %s", msg)
				result.Errors = append(result.Errors, msg)
				continue
			}
			result.Mirrored++
		}
	}

	result.Duration = uc.timeProvider.Now().Sub(now)
	uc.logger.Info("ReconcileCalendar: checked=%d cancelled=%d mirrored=%d errors=%d in %s",
		result.Checked, result.Cancelled, result.Mirrored, len(result.Errors), result.Duration)

	return result, nil
}

func (uc *UseCase) reconcileOne(ctx context.Context, appt *domain.Appointment, result *Result) error {
	if appt.ExternalEventID == nil {
		return nil
	}

	exists, err := uc.calendarClient.EventExists(ctx, *appt.ExternalEventID)
	if err != nil {
		return fmt.Errorf("event check failed: %v", err)
	}
	result.Checked++

	if exists {
		return nil
	}

	// The mirror is gone: staff deleted or cancelled the event by hand.
	// The calendar wins; free the slot.
	if err := uc.appointmentRepo.Cancel(ctx, appt.ID, externalDeletionReason); err != nil {
		return fmt.Errorf("cancel failed: %v", err)
	}

	slotKey := fmt.Sprintf("%s %s", appt.AppointmentDate.Format(domain.DateFormat), appt.StartTime)
	result.Cancelled++
	result.FreedSlots = append(result.FreedSlots, slotKey)

	uc.logger.Info("ReconcileCalendar: cancelled id=%d ref=%s, slot %s freed",
		appt.ID, appt.PublicRef, slotKey)

	uc.notifyCancellationAsync(appt)
	return nil
}

func (uc *UseCase) retryMirror(ctx context.Context, appt *domain.Appointment) error {
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
		return err
	}

	if err := uc.appointmentRepo.SetExternalEventID(ctx, appt.ID, eventID); err != nil {
		return fmt.Errorf("failed to store event id: %v", err)
	}

	uc.logger.Info("ReconcileCalendar: mirrored id=%d ref=%s as event %s", appt.ID, appt.PublicRef, eventID)
	return nil
}

func (uc *UseCase) notifyCancellationAsync(appt *domain.Appointment) {
	n := notifier.CancellationNotification{
		PublicRef:    appt.PublicRef,
		PatientName:  appt.PatientName(),
		PatientEmail: appt.Email,
		Date:         appt.AppointmentDate,
		StartTime:    appt.StartTime,
		Reason:       "Annulation par le cabinet",
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifierClient.SendCancellationNotice(ctx, n); err != nil && !errors.Is(err, notifier.ErrDisabled) {
			uc.logger.Warn("ReconcileCalendar: cancellation notice failed for ref=%s: %v", n.PublicRef, err)
		}
	}()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
