package book_appointment

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
	"github.com/apaddicto/APD-BookingService/pkg/ptr"
	"github.com/apaddicto/APD-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

type fakeCalendar struct {
	events    []domain.CalendarEvent
	listErr   error
	createErr error
	createdID string
	created   []calendarClient.AppointmentEventInput
}

func (f *fakeCalendar) ListEvents(_ context.Context, _, _ time.Time) ([]domain.CalendarEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendar) CreateAppointmentEvent(ctx context.Context, input calendarClient.AppointmentEventInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, input)
	return f.createdID, nil
}

type fakeRepo struct {
	sameDay       []*domain.Appointment
	createErr     error
	created       *domain.Appointment
	eventIDSet    string
	syncPendingID int64
}

func (f *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *appt
	out.ID = 42
	out.CreatedAt = time.Date(2026, 9, 1, 8, 0, 1, 0, time.UTC)
	f.created = &out
	return &out, nil
}

func (f *fakeRepo) GetByDateRange(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.sameDay, nil
}

func (f *fakeRepo) SetExternalEventID(ctx context.Context, _ int64, eventID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.eventIDSet = eventID
	return nil
}

func (f *fakeRepo) MarkCalendarSyncPending(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.syncPendingID = id
	return nil
}

type fakeNotifier struct {
	sent chan notifier.BookingNotification
}

func (f *fakeNotifier) SendBookingConfirmation(_ context.Context, n notifier.BookingNotification) error {
	if f.sent != nil {
		f.sent <- n
	}
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// disconnectingTxManager cancels the request context right as the commit
// lands, like a client that gives up waiting.
type disconnectingTxManager struct{ cancel context.CancelFunc }

func (m disconnectingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	m.cancel()
	return err
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func availabilityEvent(date time.Time, start, end string) domain.CalendarEvent {
	s, _ := time.Parse("15:04", start)
	e, _ := time.Parse("15:04", end)
	return domain.CalendarEvent{
		ID:        "win-" + start,
		Kind:      domain.EventKindAvailability,
		StartTime: time.Date(date.Year(), date.Month(), date.Day(), s.Hour(), s.Minute(), 0, 0, time.UTC),
		EndTime:   time.Date(date.Year(), date.Month(), date.Day(), e.Hour(), e.Minute(), 0, 0, time.UTC),
	}
}

func busyEvent(date time.Time, start, end string) domain.CalendarEvent {
	ev := availabilityEvent(date, start, end)
	ev.Kind = domain.EventKindOther
	return ev
}

func validRequest(date time.Time, start types.TimeString) *Request {
	return &Request{
		Date:      date,
		StartTime: start,
		FirstName: "Marie",
		LastName:  "Dupont",
		Email:     "marie.dupont@example.com",
		Phone:     "+33 6 12 34 56 78",
		Reason:    ptr.Ptr("suivi"),
	}
}

func newTestUseCase(cal *fakeCalendar, repo *fakeRepo, notif Notifier, now time.Time) *UseCase {
	uc := NewUseCase(repo, cal, notif, passthroughTxManager{}, Settings{
		SlotDurationMinutes: 60,
		MinNoticeMinutes:    120,
		MaxAdvanceDays:      30,
		Location:            time.UTC,
		PracticeName:        "Cabinet Test",
	}, nopLogger{})
	uc.timeProvider = fakeClock{now: now}
	return uc
}

func TestExecute_BooksAndMirrors(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{
		events:    []domain.CalendarEvent{availabilityEvent(date, "09:00", "12:00")},
		createdID: "gcal-evt-1",
	}
	repo := &fakeRepo{}
	notif := &fakeNotifier{sent: make(chan notifier.BookingNotification, 1)}
	uc := newTestUseCase(cal, repo, notif, now)

	resp, err := uc.Execute(context.Background(), validRequest(date, "10:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.PublicRef)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.False(t, resp.CalendarSyncPending)

	// Mirror created and its id stored
	require.Len(t, cal.created, 1)
	assert.Equal(t, "Marie Dupont", cal.created[0].PatientName)
	assert.Equal(t, "gcal-evt-1", repo.eventIDSet)

	// Confirmation goes out asynchronously
	select {
	case n := <-notif.sent:
		assert.Equal(t, resp.PublicRef, n.PublicRef)
	case <-time.After(time.Second):
		t.Fatal("confirmation notification was never sent")
	}
}

func TestExecute_RejectsTimeOutsideWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{events: []domain.CalendarEvent{availabilityEvent(date, "09:00", "12:00")}}
	uc := newTestUseCase(cal, &fakeRepo{}, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date, "14:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RejectsOffGridTime(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{events: []domain.CalendarEvent{availabilityEvent(date, "09:00", "12:00")}}
	uc := newTestUseCase(cal, &fakeRepo{}, &fakeNotifier{}, now)

	// Grid is anchored at 09:00 with 60-minute steps
	_, err := uc.Execute(context.Background(), validRequest(date, "09:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RejectsSlotBlockedByBusyEvent(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{events: []domain.CalendarEvent{
		availabilityEvent(date, "09:00", "12:00"),
		busyEvent(date, "10:00", "10:30"),
	}}
	uc := newTestUseCase(cal, &fakeRepo{}, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date, "10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BooksLastSlotOfDay(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	// Window runs to midnight of the next day
	window := availabilityEvent(date, "23:00", "23:00")
	window.EndTime = day(2026, 9, 11)

	cal := &fakeCalendar{
		events:    []domain.CalendarEvent{window},
		createdID: "gcal-evt-3",
	}
	uc := newTestUseCase(cal, &fakeRepo{}, &fakeNotifier{}, now)

	resp, err := uc.Execute(context.Background(), validRequest(date, "23:00"))
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("23:00"), resp.StartTime)
	assert.Equal(t, types.EndOfDay, resp.EndTime)
}

func TestExecute_SameDayOverlapIsConflict(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{events: []domain.CalendarEvent{availabilityEvent(date, "09:00", "12:00")}}
	repo := &fakeRepo{sameDay: []*domain.Appointment{
		{ID: 7, AppointmentDate: date, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(cal, repo, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date, "10:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, repo.created)
}

func TestExecute_UniqueViolationIsConflict(t *testing.T) {
	// Two racing inserts both pass the calendar check; the loser hits the
	// partial unique index and must surface a conflict, never a retry.
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{events: []domain.CalendarEvent{availabilityEvent(date, "09:00", "12:00")}}
	repo := &fakeRepo{createErr: apptRepo.ErrSlotTaken}
	uc := newTestUseCase(cal, repo, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date, "10:00"))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_MirrorFailureKeepsBooking(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{
		events:    []domain.CalendarEvent{availabilityEvent(date, "09:00", "12:00")},
		createErr: calendarClient.ErrUnavailable,
	}
	repo := &fakeRepo{}
	uc := newTestUseCase(cal, repo, &fakeNotifier{}, now)

	resp, err := uc.Execute(context.Background(), validRequest(date, "10:00"))
	require.NoError(t, err)

	// The booking stands; only the mirror is deferred
	assert.True(t, resp.CalendarSyncPending)
	assert.Equal(t, int64(42), repo.syncPendingID)
	assert.Empty(t, repo.eventIDSet)
}

func TestExecute_MirrorSurvivesDisconnectAfterCommit(t *testing.T) {
	// The client goes away between the commit and the mirror. The mirror
	// must still be created and its id stored.
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{
		events:    []domain.CalendarEvent{availabilityEvent(date, "09:00", "12:00")},
		createdID: "gcal-evt-2",
	}
	repo := &fakeRepo{}
	uc := newTestUseCase(cal, repo, &fakeNotifier{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc.txManager = disconnectingTxManager{cancel: cancel}

	resp, err := uc.Execute(ctx, validRequest(date, "10:00"))
	require.NoError(t, err)

	assert.False(t, resp.CalendarSyncPending)
	require.Len(t, cal.created, 1)
	assert.Equal(t, "gcal-evt-2", repo.eventIDSet)
}

func TestExecute_SyncFlagPersistsAfterDisconnect(t *testing.T) {
	// Same disconnect, but the mirror itself fails: the deferred-retry flag
	// must still be written, or the reconcile sweep can never find the row.
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{
		events:    []domain.CalendarEvent{availabilityEvent(date, "09:00", "12:00")},
		createErr: calendarClient.ErrUnavailable,
	}
	repo := &fakeRepo{}
	uc := newTestUseCase(cal, repo, &fakeNotifier{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	uc.txManager = disconnectingTxManager{cancel: cancel}

	resp, err := uc.Execute(ctx, validRequest(date, "10:00"))
	require.NoError(t, err)

	assert.True(t, resp.CalendarSyncPending)
	assert.Equal(t, int64(42), repo.syncPendingID)
}

func TestExecute_CalendarReadFailureAbortsBeforeWrite(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{listErr: calendarClient.ErrUnavailable}
	repo := &fakeRepo{}
	uc := newTestUseCase(cal, repo, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date, "10:00"))
	assert.ErrorIs(t, err, ErrCalendarUnavailable)
	assert.Nil(t, repo.created)
}

func TestExecute_CalendarTimeoutIsTimeout(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)

	cal := &fakeCalendar{listErr: calendarClient.ErrTimeout}
	uc := newTestUseCase(cal, &fakeRepo{}, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date, "10:00"))
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestExecute_ValidationFailures(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	date := day(2026, 9, 10)
	uc := newTestUseCase(&fakeCalendar{}, &fakeRepo{}, &fakeNotifier{}, now)

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"short first name", func(r *Request) { r.FirstName = "M" }, ErrInvalidInput},
		{"short last name", func(r *Request) { r.LastName = " D " }, ErrInvalidInput},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, ErrInvalidInput},
		{"short phone", func(r *Request) { r.Phone = "12345" }, ErrInvalidInput},
		{"missing time", func(r *Request) { r.StartTime = "" }, ErrInvalidInput},
		{"past date", func(r *Request) { r.Date = day(2026, 8, 20) }, ErrInvalidDate},
		{"beyond horizon", func(r *Request) { r.Date = day(2026, 12, 1) }, ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(date, "10:00")
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_TooSoonToday(t *testing.T) {
	// 08:30 now, 2h notice: a 10:00 slot today is too soon
	now := time.Date(2026, 9, 10, 8, 30, 0, 0, time.UTC)
	date := day(2026, 9, 10)
	uc := newTestUseCase(&fakeCalendar{}, &fakeRepo{}, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(date, "10:00"))
	assert.ErrorIs(t, err, ErrBookingTooSoon)
}
