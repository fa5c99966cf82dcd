package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/41hairstudio/HS-BookingService/internal/config"
	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/infra/storage"
	"github.com/41hairstudio/HS-BookingService/internal/schedule"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

type memStore struct {
	reservations map[string]*domain.Reservation
}

func newMemStore(reservations ...*domain.Reservation) *memStore {
	m := &memStore{reservations: make(map[string]*domain.Reservation)}
	for _, r := range reservations {
		m.reservations[r.ID] = r
	}
	return m
}

func (m *memStore) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, storage.ErrReservationNotFound
	}
	return r, nil
}

func (m *memStore) ListByDate(_ context.Context, date time.Time) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for _, r := range m.reservations {
		if r.IsActive() && r.Date.Equal(date) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *memStore) Update(_ context.Context, id string, date time.Time, startTime types.TimeString) error {
	r, ok := m.reservations[id]
	if !ok {
		return storage.ErrReservationNotFound
	}
	r.Date = date
	r.StartTime = startTime
	return nil
}

type fakeBlackouts struct{}

func (fakeBlackouts) IsBlackout(context.Context, time.Time) bool { return false }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSchedule(t *testing.T) *schedule.WeeklySchedule {
	t.Helper()
	s, err := schedule.New(config.ScheduleConfig{
		HorizonMonths:  2,
		SaturdayOnline: true,
		Weekdays: []config.WindowConfig{
			{Open: "10:00", Close: "13:30"},
			{Open: "17:00", Close: "20:30"},
		},
		Saturday: []config.WindowConfig{
			{Open: "10:00", Close: "14:00"},
		},
	})
	require.NoError(t, err)
	return s
}

func newTestUseCase(t *testing.T, store *memStore, now time.Time) *UseCase {
	t.Helper()
	uc := NewUseCase(store, fakeBlackouts{}, testSchedule(t), fakeTxManager{}, time.UTC, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func activeReservation(id string, date time.Time, startTime types.TimeString) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		Date:      date,
		StartTime: startTime,
		Name:      "María García",
		Email:     "maria@example.com",
		Phone:     "+34600111222",
		Status:    domain.StatusActive,
	}
}

func TestExecute_MoveToFreeSlot(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	oldDate := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	newDate := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	store := newMemStore(activeReservation("r1", oldDate, "11:00"))
	uc := newTestUseCase(t, store, now)

	resp, err := uc.Execute(context.Background(), &Request{ID: "r1", Date: newDate, StartTime: "17:30"})
	require.NoError(t, err)

	assert.Equal(t, newDate, resp.Date)
	assert.Equal(t, types.TimeString("17:30"), resp.StartTime)
	assert.Equal(t, "María García", resp.Name)

	updated, err := store.GetByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("17:30"), updated.StartTime)
}

func TestExecute_OwnSlotExcluded(t *testing.T) {
	// Перенос на собственный слот (смена только времени в тот же день
	// или подтверждение того же времени) не конфликтует сам с собой
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	store := newMemStore(activeReservation("r1", date, "11:00"))
	uc := newTestUseCase(t, store, now)

	_, err := uc.Execute(context.Background(), &Request{ID: "r1", Date: date, StartTime: "11:00"})
	assert.NoError(t, err)
}

func TestExecute_SlotTakenByOther(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	other := activeReservation("r2", date, "12:00")
	other.Phone = "+34600333444"
	store := newMemStore(activeReservation("r1", date, "11:00"), other)
	uc := newTestUseCase(t, store, now)

	_, err := uc.Execute(context.Background(), &Request{ID: "r1", Date: date, StartTime: "12:00"})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_NotFound(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	uc := newTestUseCase(t, newMemStore(), now)

	_, err := uc.Execute(context.Background(), &Request{
		ID:        "missing",
		Date:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "11:00",
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_CancelledReservation(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	cancelled := activeReservation("r1", date, "11:00")
	cancelled.Status = domain.StatusCancelled
	uc := newTestUseCase(t, newMemStore(cancelled), now)

	_, err := uc.Execute(context.Background(), &Request{ID: "r1", Date: date, StartTime: "12:00"})
	assert.ErrorIs(t, err, ErrReservationCancelled)
}

func TestExecute_TimeNotOnGrid(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	store := newMemStore(activeReservation("r1", date, "11:00"))
	uc := newTestUseCase(t, store, now)

	_, err := uc.Execute(context.Background(), &Request{ID: "r1", Date: date, StartTime: "14:30"})
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PastDate(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	store := newMemStore(activeReservation("r1", date, "11:00"))
	uc := newTestUseCase(t, store, now)

	_, err := uc.Execute(context.Background(), &Request{ID: "r1", Date: date, StartTime: "11:00"})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
