package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apaddicto/APD-BookingService/internal/domain"
	apptRepo "github.com/apaddicto/APD-BookingService/internal/infra/storage/appointment"
	calendarClient "github.com/apaddicto/APD-BookingService/internal/integrations/googlecalendar"
	"github.com/apaddicto/APD-BookingService/internal/integrations/notifier"
	"github.com/apaddicto/APD-BookingService/internal/service/appointments/models"
	"github.com/apaddicto/APD-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	appt    *domain.Appointment
	listed  []*domain.Appointment
	listErr error

	cancelledReason string
	updatedStatus   domain.AppointmentStatus
}

func (f *fakeRepo) GetByPublicRef(_ context.Context, ref string) (*domain.Appointment, error) {
	if f.appt == nil || f.appt.PublicRef != ref {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return f.appt, nil
}

func (f *fakeRepo) GetByDateRange(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	f.updatedStatus = status
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelledReason = reason
	return nil
}

type fakeCalendar struct {
	deleted   []string
	deleteErr error
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

type fakeNotifier struct {
	sent chan notifier.CancellationNotification
}

func (f *fakeNotifier) SendCancellationNotice(_ context.Context, n notifier.CancellationNotification) error {
	if f.sent != nil {
		f.sent <- n
	}
	return nil
}

func testAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:              7,
		PublicRef:       "abc-123",
		AppointmentDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		EndTime:         "11:00",
		Status:          status,
		FirstName:       "Marie",
		LastName:        "Dupont",
		Email:           "marie@example.com",
		Phone:           "0612345678",
		ExternalEventID: ptr.Ptr("evt-7"),
	}
}

func newTestService(repo *fakeRepo, cal *fakeCalendar, notif Notifier) *Service {
	return NewService(repo, cal, notif, nopLogger{})
}

func TestGetByRef(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusConfirmed)}
	svc := newTestService(repo, &fakeCalendar{}, &fakeNotifier{})

	resp, err := svc.GetByRef(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.PublicRef)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = svc.GetByRef(context.Background(), "unknown-ref")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancel_DefaultReason(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusConfirmed)}
	cal := &fakeCalendar{}
	notif := &fakeNotifier{sent: make(chan notifier.CancellationNotification, 1)}
	svc := newTestService(repo, cal, notif)

	resp, err := svc.Cancel(context.Background(), "abc-123", nil)
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "Annulation par le patient", repo.cancelledReason)
	assert.Equal(t, []string{"evt-7"}, cal.deleted)

	select {
	case n := <-notif.sent:
		assert.Equal(t, "marie@example.com", n.PatientEmail)
		assert.Equal(t, "Annulation par le patient", n.Reason)
	case <-time.After(time.Second):
		t.Fatal("cancellation notice was never sent")
	}
}

func TestCancel_CustomReason(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusPending)}
	svc := newTestService(repo, &fakeCalendar{}, &fakeNotifier{})

	req := &models.CancelAppointmentRequest{Reason: ptr.Ptr("empêchement")}
	_, err := svc.Cancel(context.Background(), "abc-123", req)
	require.NoError(t, err)
	assert.Equal(t, "empêchement", repo.cancelledReason)
}

func TestCancel_EmailCheck(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusConfirmed)}
	svc := newTestService(repo, &fakeCalendar{}, &fakeNotifier{})

	// Mismatch reads as not-found
	req := &models.CancelAppointmentRequest{Email: ptr.Ptr("autre@example.com")}
	_, err := svc.Cancel(context.Background(), "abc-123", req)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.Empty(t, repo.cancelledReason)

	// Case-insensitive match passes
	req = &models.CancelAppointmentRequest{Email: ptr.Ptr("MARIE@example.com")}
	_, err = svc.Cancel(context.Background(), "abc-123", req)
	require.NoError(t, err)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusCancelled)}
	svc := newTestService(repo, &fakeCalendar{}, &fakeNotifier{})

	_, err := svc.Cancel(context.Background(), "abc-123", nil)
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, repo.cancelledReason)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusCompleted)}
	svc := newTestService(repo, &fakeCalendar{}, &fakeNotifier{})

	_, err := svc.Cancel(context.Background(), "abc-123", nil)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_CalendarDeleteFailureIsBestEffort(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusConfirmed)}
	cal := &fakeCalendar{deleteErr: calendarClient.ErrUnavailable}
	svc := newTestService(repo, cal, &fakeNotifier{})

	resp, err := svc.Cancel(context.Background(), "abc-123", nil)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    domain.AppointmentStatus
		to      string
		wantErr error
	}{
		{domain.StatusPending, "confirmed", nil},
		{domain.StatusPending, "cancelled", nil},
		{domain.StatusPending, "completed", ErrInvalidTransition},
		{domain.StatusConfirmed, "completed", nil},
		{domain.StatusConfirmed, "no_show", nil},
		{domain.StatusConfirmed, "cancelled", nil},
		{domain.StatusConfirmed, "pending", ErrInvalidTransition},
		{domain.StatusCancelled, "confirmed", ErrInvalidTransition},
		{domain.StatusCompleted, "no_show", ErrInvalidTransition},
		{domain.StatusNoShow, "confirmed", ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+tt.to, func(t *testing.T) {
			repo := &fakeRepo{appt: testAppointment(tt.from)}
			svc := newTestService(repo, &fakeCalendar{}, &fakeNotifier{})

			resp, err := svc.UpdateStatus(context.Background(), "abc-123", &models.UpdateStatusRequest{Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			assert.Equal(t, domain.AppointmentStatus(tt.to), repo.updatedStatus)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &fakeRepo{appt: testAppointment(domain.StatusPending)}
	svc := newTestService(repo, &fakeCalendar{}, &fakeNotifier{})

	_, err := svc.UpdateStatus(context.Background(), "abc-123", &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestList(t *testing.T) {
	repo := &fakeRepo{listed: []*domain.Appointment{
		testAppointment(domain.StatusConfirmed),
		testAppointment(domain.StatusPending),
	}}
	svc := newTestService(repo, &fakeCalendar{}, &fakeNotifier{})

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Appointments, 2)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc := newTestService(&fakeRepo{}, &fakeCalendar{}, &fakeNotifier{})

	resp, err := svc.List(context.Background(), &models.ListAppointmentsRequest{Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, resp)
}
