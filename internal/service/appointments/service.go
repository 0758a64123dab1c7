package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	apptRepo "github.com/apaddicto/APD-BookingService/internal/infra/storage/appointment"
	calendarClient "github.com/apaddicto/APD-BookingService/internal/integrations/googlecalendar"
	"github.com/apaddicto/APD-BookingService/internal/integrations/notifier"
	"github.com/apaddicto/APD-BookingService/internal/service/appointments/models"
)

const (
	defaultCancellationReason = "Annulation par le patient"

	notifyTimeout = 10 * time.Second
)

// allowedTransitions lists the status changes an admin may apply.
// Cancellation has its own path so the calendar mirror gets cleaned up.
var allowedTransitions = map[domain.AppointmentStatus][]domain.AppointmentStatus{
	domain.StatusPending:   {domain.StatusConfirmed, domain.StatusCancelled},
	domain.StatusConfirmed: {domain.StatusCompleted, domain.StatusNoShow, domain.StatusCancelled},
}

// Service exposes appointment lookup, listing and lifecycle operations.
// Booking itself lives in its own use case; everything after the booking
// is here.
type Service struct {
	appointmentRepo AppointmentRepository
	calendarClient  CalendarClient
	notifierClient  Notifier
	logger          Logger
}

// NewService creates the appointments service.
func NewService(
	appointmentRepo AppointmentRepository,
	calendarClient CalendarClient,
	notifierClient Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		calendarClient:  calendarClient,
		notifierClient:  notifierClient,
		logger:          logger,
	}
}

// GetByRef fetches an appointment by its public reference. The reference
// is an unguessable UUID handed out at booking time; knowing it is the
// access check.
func (s *Service) GetByRef(ctx context.Context, ref string) (*models.AppointmentResponse, error) {
	appt, err := s.getByRef(ctx, ref, "GetByRef")
	if err != nil {
		return nil, err
	}
	return models.FromDomainAppointment(appt), nil
}

// List returns appointments matching the filter. Admin only; the handler
// enforces that.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	list, err := s.appointmentRepo.GetByDateRange(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(list), nil
}

// Cancel cancels an appointment, removes its calendar mirror and notifies
// the patient. Cancelling frees the slot immediately: the active-slot
// index ignores cancelled rows.
func (s *Service) Cancel(ctx context.Context, ref string, req *models.CancelAppointmentRequest) (*models.AppointmentResponse, error) {
	appt, err := s.getByRef(ctx, ref, "Cancel")
	if err != nil {
		return nil, err
	}

	// When the caller supplies an email it must match the booking. Answer
	// "not found" on mismatch so the ref leaks nothing.
	if req != nil && req.Email != nil && !strings.EqualFold(*req.Email, appt.Email) {
		s.logger.Warn("Cancel: email mismatch for ref=%s", ref)
		return nil, ErrAppointmentNotFound
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment ref=%s in status %s cannot be cancelled", ref, appt.Status)
		return nil, fmt.Errorf("%w: status is %s", ErrCannotCancel, appt.Status)
	}

	reason := defaultCancellationReason
	if req != nil && req.Reason != nil && *req.Reason != "" {
		reason = *req.Reason
	}
	if len(reason) > domain.MaxCancellationReason {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReason)
	}

	if err := s.appointmentRepo.Cancel(ctx, appt.ID, reason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: cancelled appointment id=%d ref=%s", appt.ID, ref)

	// Cancellation is committed; the mirror cleanup is best-effort. An
	// orphaned event only blocks the calendar view, never the slot.
	if appt.ExternalEventID != nil {
		if err := s.calendarClient.DeleteEvent(ctx, *appt.ExternalEventID); err != nil &&
			!errors.Is(err, calendarClient.ErrEventNotFound) {
			s.logger.Warn("Cancel: failed to delete calendar event %s for ref=%s: %v",
				*appt.ExternalEventID, ref, err)
		}
	}

	s.notifyCancellationAsync(appt, reason)

	appt.Status = domain.StatusCancelled
	appt.CancellationReason = &reason
	now := time.Now()
	appt.CancelledAt = &now
	return models.FromDomainAppointment(appt), nil
}

// UpdateStatus applies an admin status change.
func (s *Service) UpdateStatus(ctx context.Context, ref string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	target, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status %q for ref=%s", req.Status, ref)
		return nil, ErrInvalidStatus
	}

	appt, err := s.getByRef(ctx, ref, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(appt.Status, target) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for ref=%s", appt.Status, target, ref)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, target)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, appt.ID, target); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: appointment ref=%s is now %s", ref, target)

	appt.Status = target
	return models.FromDomainAppointment(appt), nil
}

func (s *Service) getByRef(ctx context.Context, ref, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByPublicRef(ctx, ref)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment ref=%s not found", op, ref)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for ref=%s: %v", op, ref, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

func (s *Service) notifyCancellationAsync(appt *domain.Appointment, reason string) {
	n := notifier.CancellationNotification{
		PublicRef:    appt.PublicRef,
		PatientName:  appt.PatientName(),
		PatientEmail: appt.Email,
		Date:         appt.AppointmentDate,
		StartTime:    appt.StartTime,
		Reason:       reason,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifierClient.SendCancellationNotice(ctx, n); err != nil && !errors.Is(err, notifier.ErrDisabled) {
			s.logger.Warn("Cancel: cancellation notice failed for ref=%s: %v", n.PublicRef, err)
		}
	}()
}

func transitionAllowed(from, to domain.AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}
