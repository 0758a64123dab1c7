package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	calendarClient "github.com/apaddicto/APD-BookingService/internal/integrations/googlecalendar"
)

// Service manages availability windows. Windows live only in the external
// calendar; creating one here is exactly equivalent to staff creating a
// transparent "🟢 DISPONIBLE" event by hand.
type Service struct {
	calendarClient CalendarClient
	location       *time.Location
	logger         Logger
}

// NewService creates the availability service.
func NewService(calendarClient CalendarClient, location *time.Location, logger Logger) *Service {
	return &Service{
		calendarClient: calendarClient,
		location:       location,
		logger:         logger,
	}
}

// CreateWindow creates an availability window in the calendar.
func (s *Service) CreateWindow(ctx context.Context, req *CreateWindowRequest) (*WindowResponse, error) {
	if err := s.validate(req); err != nil {
		s.logger.Warn("CreateWindow: validation failed: %v", err)
		return nil, err
	}

	eventID, err := s.calendarClient.CreateAvailabilityEvent(ctx, calendarClient.AvailabilityEventInput{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Title:     req.Title,
	})
	if err != nil {
		s.logger.Error("CreateWindow: calendar write failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	s.logger.Info("CreateWindow: created window %s %s-%s as event %s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, eventID)

	return &WindowResponse{
		EventID:   eventID,
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}, nil
}

// DeleteWindow removes an availability window from the calendar.
func (s *Service) DeleteWindow(ctx context.Context, eventID string) error {
	if eventID == "" {
		return fmt.Errorf("%w: eventId is required", ErrInvalidInput)
	}

	if err := s.calendarClient.DeleteEvent(ctx, eventID); err != nil {
		if errors.Is(err, calendarClient.ErrEventNotFound) {
			s.logger.Warn("DeleteWindow: event %s not found", eventID)
			return ErrWindowNotFound
		}
		s.logger.Error("DeleteWindow: calendar delete failed for event %s: %v", eventID, err)
		return fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	s.logger.Info("DeleteWindow: deleted event %s", eventID)
	return nil
}

func (s *Service) validate(req *CreateWindowRequest) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	today := time.Now().In(s.location)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.location)
	if req.Date.In(s.location).Before(today) {
		return fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	return nil
}
