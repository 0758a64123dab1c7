package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	"github.com/apaddicto/APD-BookingService/pkg/types"
)

// Logger is the logging surface the client needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client talks to the practitioner's Google Calendar with a service
// account. The calendar is a shared, multi-writer resource: staff edit it
// by hand, so every read is a snapshot that may be stale by the time a
// decision is acted on.
type Client struct {
	svc        *calendar.Service
	calendarID string
	timezone   string
	timeout    time.Duration
	log        Logger
}

// NewClient authenticates with the service-account key file and verifies
// the credentials are usable. Misconfiguration fails here, at construction,
// never as a silently-disabled integration.
func NewClient(ctx context.Context, calendarID, credentialsFile, timezone string, timeout time.Duration, log Logger) (*Client, error) {
	key, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials file: %v", ErrInternal, err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(key, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service account key: %v", ErrInternal, err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", ErrInternal, err)
	}

	return &Client{
		svc:        svc,
		calendarID: calendarID,
		timezone:   timezone,
		timeout:    timeout,
		log:        log,
	}, nil
}

// ListEvents returns the classified events overlapping [timeMin, timeMax),
// ordered by start time, with recurring events already expanded by the
// provider. All-day entries carry no clock time and are skipped.
func (c *Client) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]domain.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var events []domain.CalendarEvent
	call := c.svc.Events.List(c.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	err := call.Pages(ctx, func(page *calendar.Events) error {
		for _, item := range page.Items {
			ev, ok := c.toDomainEvent(item)
			if !ok {
				continue
			}
			events = append(events, ev)
		}
		return nil
	})
	if err != nil {
		return nil, c.mapError("ListEvents", err)
	}

	return events, nil
}

// CreateAppointmentEvent mirrors a confirmed booking as an opaque event
// blocking the calendar, with the patient as attendee.
func (c *Client) CreateAppointmentEvent(ctx context.Context, input AppointmentEventInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	description := fmt.Sprintf("📋 Rendez-vous avec %s\n📧 Email: %s\n📱 Téléphone: %s",
		input.PatientName, input.PatientEmail, input.PatientPhone)
	if input.Reason != nil && *input.Reason != "" {
		description += fmt.Sprintf("\n\n💬 Motif: %s", *input.Reason)
	}

	event := &calendar.Event{
		Summary:      fmt.Sprintf("🏥 RDV - %s", input.PatientName),
		Description:  description,
		Start:        c.eventDateTime(input.Date, input.StartTime),
		End:          c.eventDateTime(input.Date, input.EndTime),
		Transparency: domain.TransparencyOpaque,
		ColorId:      "2",
		Attendees: []*calendar.EventAttendee{
			{Email: input.PatientEmail, DisplayName: input.PatientName},
		},
		Reminders: &calendar.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "email", Minutes: 60},
				{Method: "popup", Minutes: 30},
			},
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				domain.TagAvailabilitySlot: "false",
				domain.TagAppointment:      "true",
			},
		},
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).SendUpdates("all").Context(ctx).Do()
	if err != nil {
		return "", c.mapError("CreateAppointmentEvent", err)
	}

	c.log.Info("CreateAppointmentEvent: created event id=%s for %s %s",
		created.Id, input.Date.Format(domain.DateFormat), input.StartTime)
	return created.Id, nil
}

// CreateAvailabilityEvent creates a transparent availability window.
func (c *Client) CreateAvailabilityEvent(ctx context.Context, input AvailabilityEventInput) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	summary := "🟢 DISPONIBLE"
	if input.Title != nil && *input.Title != "" {
		summary = *input.Title
	}

	event := &calendar.Event{
		Summary:      summary,
		Description:  "Créneau disponible pour rendez-vous",
		Start:        c.eventDateTime(input.Date, input.StartTime),
		End:          c.eventDateTime(input.Date, input.EndTime),
		Transparency: domain.TransparencyTransparent,
		ColorId:      "10",
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				domain.TagAvailabilitySlot: "true",
			},
		},
	}

	created, err := c.svc.Events.Insert(c.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", c.mapError("CreateAvailabilityEvent", err)
	}

	c.log.Info("CreateAvailabilityEvent: created event id=%s for %s %s-%s",
		created.Id, input.Date.Format(domain.DateFormat), input.StartTime, input.EndTime)
	return created.Id, nil
}

// EventExists reports whether an event still exists and is not cancelled.
// Deleted events answer 404 or 410 depending on how long ago they were
// removed; both mean gone.
func (c *Client) EventExists(ctx context.Context, eventID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	event, err := c.svc.Events.Get(c.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		if isGone(err) {
			return false, nil
		}
		return false, c.mapError("EventExists", err)
	}

	return event.Status != "cancelled", nil
}

// DeleteEvent removes an event. Deleting an already-gone event returns
// ErrEventNotFound; callers treating deletion as idempotent may ignore it.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.svc.Events.Delete(c.calendarID, eventID).Context(ctx).Do(); err != nil {
		if isGone(err) {
			return ErrEventNotFound
		}
		return c.mapError("DeleteEvent", err)
	}
	return nil
}

func (c *Client) eventDateTime(date time.Time, t types.TimeString) *calendar.EventDateTime {
	return &calendar.EventDateTime{
		DateTime: fmt.Sprintf("%sT%s:00", date.Format(domain.DateFormat), t),
		TimeZone: c.timezone,
	}
}

func (c *Client) toDomainEvent(item *calendar.Event) (domain.CalendarEvent, bool) {
	if item.Start == nil || item.End == nil || item.Start.DateTime == "" || item.End.DateTime == "" {
		return domain.CalendarEvent{}, false
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		c.log.Warn("ListEvents: skipping event id=%s with bad start time %q", item.Id, item.Start.DateTime)
		return domain.CalendarEvent{}, false
	}
	end, err := time.Parse(time.RFC3339, item.End.DateTime)
	if err != nil {
		c.log.Warn("ListEvents: skipping event id=%s with bad end time %q", item.Id, item.End.DateTime)
		return domain.CalendarEvent{}, false
	}

	var tags map[string]string
	if item.ExtendedProperties != nil {
		tags = item.ExtendedProperties.Private
	}

	return domain.CalendarEvent{
		ID:        item.Id,
		Title:     item.Summary,
		StartTime: start,
		EndTime:   end,
		Kind:      domain.ClassifyEvent(item.Summary, item.Transparency, tags),
	}, true
}

func (c *Client) mapError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		c.log.Error("%s: calendar request timed out: %v", op, err)
		return fmt.Errorf("%w: %s", ErrTimeout, op)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone {
			return ErrEventNotFound
		}
		if apiErr.Code >= http.StatusInternalServerError || apiErr.Code == http.StatusTooManyRequests {
			c.log.Error("%s: calendar API error %d: %v", op, apiErr.Code, err)
			return fmt.Errorf("%w: %s: status %d", ErrUnavailable, op, apiErr.Code)
		}
		return fmt.Errorf("%w: %s: %v", ErrInvalidResponse, op, err)
	}

	c.log.Error("%s: calendar unreachable: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

func isGone(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
	}
	return false
}
