package booking

import (
	"context"
	"testing"
	"time"

	"fieldline/models"
	"fieldline/services/scheduling"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCalendar struct {
	events   []CalendarEvent
	conflict bool
}

func (c *fakeCalendar) CreateEvent(_ context.Context, event CalendarEvent) (string, error) {
	if c.conflict {
		return "", &ConflictError{EventID: "existing", Message: "interval taken"}
	}
	c.events = append(c.events, event)
	return "evt-1", nil
}

func (c *fakeCalendar) DeleteEvent(_ context.Context, _ string) error { return nil }

type fakeStore struct {
	inserted []models.Appointment
	err      error
}

func (s *fakeStore) Insert(_ context.Context, apt models.Appointment) error {
	if s.err != nil {
		return s.err
	}
	s.inserted = append(s.inserted, apt)
	return nil
}

func newTestService(t *testing.T, calendar *fakeCalendar, store *fakeStore) (*Service, *ReservationLock) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	lock := NewReservationLock(client, time.Minute)
	svc := &Service{
		Engine:       scheduling.NewEngine(scheduling.DefaultConfig(), nil),
		Calendar:     calendar,
		Reservations: lock,
		Appointments: store,
	}
	return svc, lock
}

func testSlot() models.TimeSlot {
	start := time.Date(2026, 9, 2, 11, 0, 0, 0, time.UTC) // Wednesday, off-peak
	return models.TimeSlot{
		Start:          start,
		End:            start.Add(time.Hour),
		TechnicianID:   "t1",
		TechnicianName: "Alice",
	}
}

func TestConfirmSlotBooksAndPrices(t *testing.T) {
	calendar := &fakeCalendar{}
	store := &fakeStore{}
	svc, _ := newTestService(t, calendar, store)

	business := models.Business{ID: "b1", DefaultBaseRate: 100}
	customer := models.Customer{Name: "Pat Jones", PhoneNumber: "555-0100", Address: "12 Oak St"}
	job := models.JobRequirements{ServiceType: "plumbing", EstimatedDuration: 60}

	result, err := svc.ConfirmSlot(context.Background(), business, customer, job, testSlot())
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, "Appointment booked for September 2 at 11:00 AM", result.Message)
	assert.Equal(t, 100.0, result.TotalPrice)
	require.Len(t, result.AssignedTechnicians, 1)
	assert.Equal(t, "t1", result.AssignedTechnicians[0].ID)

	require.Len(t, calendar.events, 1)
	assert.Equal(t, "plumbing - Pat Jones", calendar.events[0].Title)
	assert.Contains(t, calendar.events[0].Description, "Phone: 555-0100")

	require.Len(t, store.inserted, 1)
	assert.Equal(t, "evt-1", store.inserted[0].ID)
	assert.Equal(t, "t1", store.inserted[0].TechnicianID)
}

func TestConfirmSlotEmergencyTitlePrefix(t *testing.T) {
	calendar := &fakeCalendar{}
	svc, _ := newTestService(t, calendar, &fakeStore{})

	job := models.JobRequirements{ServiceType: "plumbing", EstimatedDuration: 60, Urgency: models.UrgencyEmergency}
	result, err := svc.ConfirmSlot(context.Background(), models.Business{ID: "b1"}, models.Customer{}, job, testSlot())
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Contains(t, calendar.events[0].Title, "EMERGENCY: ")
}

func TestConfirmSlotLosesReservationRace(t *testing.T) {
	calendar := &fakeCalendar{}
	svc, lock := newTestService(t, calendar, &fakeStore{})
	slot := testSlot()

	// Another caller holds the interval.
	_, err := lock.Reserve(context.Background(), slot.TechnicianID, slot.Start, slot.End)
	require.NoError(t, err)

	job := models.JobRequirements{ServiceType: "plumbing", EstimatedDuration: 60}
	result, err := svc.ConfirmSlot(context.Background(), models.Business{ID: "b1"}, models.Customer{}, job, slot)
	require.NoError(t, err, "a lost race is a result, not an error")
	assert.False(t, result.Success)
	assert.Equal(t, "That time was just taken. Please pick another slot.", result.Message)
	assert.Empty(t, calendar.events)
}

func TestConfirmSlotCalendarConflictReleasesReservation(t *testing.T) {
	calendar := &fakeCalendar{conflict: true}
	svc, lock := newTestService(t, calendar, &fakeStore{})
	slot := testSlot()

	job := models.JobRequirements{ServiceType: "plumbing", EstimatedDuration: 60}
	result, err := svc.ConfirmSlot(context.Background(), models.Business{ID: "b1"}, models.Customer{}, job, slot)
	require.NoError(t, err)
	assert.False(t, result.Success)

	// The interval must be free again for the caller's next pick.
	_, err = lock.Reserve(context.Background(), slot.TechnicianID, slot.Start, slot.End)
	require.NoError(t, err)
}

func TestConfirmSlotStoreFailureDoesNotFailBooking(t *testing.T) {
	calendar := &fakeCalendar{}
	store := &fakeStore{err: assert.AnError}
	svc, _ := newTestService(t, calendar, store)

	job := models.JobRequirements{ServiceType: "plumbing", EstimatedDuration: 60}
	result, err := svc.ConfirmSlot(context.Background(), models.Business{ID: "b1"}, models.Customer{}, job, testSlot())
	require.NoError(t, err)
	assert.True(t, result.Success, "the calendar event is the source of truth")
}

func TestConfirmSlotValidation(t *testing.T) {
	svc, _ := newTestService(t, &fakeCalendar{}, &fakeStore{})

	_, err := svc.ConfirmSlot(context.Background(), models.Business{}, models.Customer{},
		models.JobRequirements{ServiceType: "plumbing"}, testSlot())
	require.Error(t, err, "zero duration is a caller bug")

	slot := testSlot()
	slot.TechnicianID = ""
	_, err = svc.ConfirmSlot(context.Background(), models.Business{}, models.Customer{},
		models.JobRequirements{ServiceType: "plumbing", EstimatedDuration: 60}, slot)
	require.Error(t, err)
}
