package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/41hairstudio/HS-BookingService/internal/config"
	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/schedule"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

type fakeStore struct {
	reservations []*domain.Reservation
	err          error
}

func (f *fakeStore) ListByDate(_ context.Context, _ time.Time) ([]*domain.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

type fakeBlackouts struct {
	dates map[string]bool
}

func (f *fakeBlackouts) IsBlackout(_ context.Context, date time.Time) bool {
	return f.dates[date.Format(domain.DateFormat)]
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

func newTestUseCase(t *testing.T, store *fakeStore, blackouts *fakeBlackouts, now time.Time) *UseCase {
	t.Helper()
	if blackouts == nil {
		blackouts = &fakeBlackouts{}
	}
	uc := NewUseCase(store, blackouts, testSchedule(t), time.UTC, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_FullWeekday(t *testing.T) {
	// Среда без бронирований: полная сетка из 16 слотов
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) // понедельник
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t, &fakeStore{}, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 16)
	assert.Equal(t, types.TimeString("10:00"), resp.Slots[0])
	assert.Equal(t, types.TimeString("13:30"), resp.Slots[7])
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[8])
	assert.Equal(t, types.TimeString("20:30"), resp.Slots[15])
	assert.False(t, resp.Degraded)
}

func TestExecute_SubtractsBookedSlots(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{
		reservations: []*domain.Reservation{
			{ID: "a", Date: date, StartTime: "10:30", Status: domain.StatusActive},
			{ID: "b", Date: date, StartTime: "17:00", Status: domain.StatusActive},
		},
	}
	uc := newTestUseCase(t, store, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 14)
	assert.NotContains(t, resp.Slots, types.TimeString("10:30"))
	assert.NotContains(t, resp.Slots, types.TimeString("17:00"))
	assert.Contains(t, resp.Slots, types.TimeString("10:00"))
}

func TestExecute_TodayFiltersPastSlots(t *testing.T) {
	// Запрос в 19:50: остаются только 20:00 и 20:30
	now := time.Date(2025, 3, 12, 19, 50, 0, 0, time.UTC) // среда
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t, &fakeStore{}, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"20:00", "20:30"}, resp.Slots)
}

func TestExecute_TodaySlotEqualToNowExcluded(t *testing.T) {
	// Слот, совпадающий с текущим временем, уже недоступен
	now := time.Date(2025, 3, 12, 20, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t, &fakeStore{}, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"20:30"}, resp.Slots)
}

func TestExecute_Sunday(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC) // воскресенье

	uc := newTestUseCase(t, &fakeStore{}, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Holiday(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	blackouts := &fakeBlackouts{dates: map[string]bool{"2025-03-12": true}}
	uc := newTestUseCase(t, &fakeStore{}, blackouts, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	uc := newTestUseCase(t, &fakeStore{}, nil, now)

	_, err := uc.Execute(context.Background(), &Request{Date: date})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_BeyondHorizon(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC) // горизонт 2 месяца: до 2025-05-10

	uc := newTestUseCase(t, &fakeStore{}, nil, now)

	_, err := uc.Execute(context.Background(), &Request{Date: date})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_DegradedOnStoreFailure(t *testing.T) {
	// При недоступности хранилища отдаём полную сетку с флагом Degraded
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{err: errors.New("connection refused")}
	uc := newTestUseCase(t, store, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Slots, 16)
}

func TestExecute_Idempotent(t *testing.T) {
	// Повторный запрос без изменений в хранилище возвращает тот же список
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{
		reservations: []*domain.Reservation{
			{ID: "a", Date: date, StartTime: "11:00", Status: domain.StatusActive},
		},
	}
	uc := newTestUseCase(t, store, nil, now)

	first, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_CancelledReservationFreesSlot(t *testing.T) {
	// Отменённые бронирования не вычитаются из сетки
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	store := &fakeStore{
		reservations: []*domain.Reservation{
			{ID: "a", Date: date, StartTime: "11:00", Status: domain.StatusCancelled},
		},
	}
	uc := newTestUseCase(t, store, nil, now)

	resp, err := uc.Execute(context.Background(), &Request{Date: date})
	require.NoError(t, err)
	assert.Contains(t, resp.Slots, types.TimeString("11:00"))
}
