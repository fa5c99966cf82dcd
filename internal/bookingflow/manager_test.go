package bookingflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/41hairstudio/HS-BookingService/internal/usecase/create_booking"
	"github.com/41hairstudio/HS-BookingService/internal/usecase/get_available_slots"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

type fakeAvailability struct {
	slots []types.TimeString
	err   error
	calls int
}

func (f *fakeAvailability) Execute(_ context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &get_available_slots.Response{Date: req.Date, Slots: f.slots}, nil
}

type fakeCreator struct {
	resp *create_booking.Response
	err  error
	last *create_booking.Request
}

func (f *fakeCreator) Execute(_ context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

func defaultSlots() []types.TimeString {
	return []types.TimeString{"10:00", "10:30", "11:00"}
}

// advanceToReviewing проводит сценарий до шага проверки данных
func advanceToReviewing(t *testing.T, m *Manager) string {
	t.Helper()
	ctx := context.Background()

	flow := m.Start(ctx)

	_, err := m.SelectDate(ctx, flow.ID, testDate)
	require.NoError(t, err)

	_, err = m.SelectTime(ctx, flow.ID, "10:30")
	require.NoError(t, err)

	_, err = m.SubmitDetails(ctx, flow.ID, "María García", "maria@example.com", "+34600111222")
	require.NoError(t, err)

	return flow.ID
}

func TestHappyPath(t *testing.T) {
	availability := &fakeAvailability{slots: defaultSlots()}
	creator := &fakeCreator{resp: &create_booking.Response{ID: "res-1"}}
	m := NewManager(availability, creator, nopLogger{})
	ctx := context.Background()

	flow := m.Start(ctx)
	assert.Equal(t, StateSelectingDate, flow.State)

	flow, err := m.SelectDate(ctx, flow.ID, testDate)
	require.NoError(t, err)
	assert.Equal(t, StateSelectingTime, flow.State)
	assert.Equal(t, defaultSlots(), flow.OfferedSlots)

	flow, err = m.SelectTime(ctx, flow.ID, "10:30")
	require.NoError(t, err)
	assert.Equal(t, StateEnteringDetails, flow.State)

	flow, err = m.SubmitDetails(ctx, flow.ID, "María García", "maria@example.com", "+34600111222")
	require.NoError(t, err)
	assert.Equal(t, StateReviewing, flow.State)

	flow, created, err := m.Confirm(ctx, flow.ID)
	require.NoError(t, err)
	assert.Equal(t, StateConfirmed, flow.State)
	assert.Equal(t, "res-1", created.ID)

	// Запрос на создание собран из накопленных шагов
	assert.Equal(t, testDate, creator.last.Date)
	assert.Equal(t, types.TimeString("10:30"), creator.last.StartTime)
	assert.Equal(t, "María García", creator.last.Name)

	// Завершённый сценарий удаляется
	_, err = m.Get(ctx, flow.ID)
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestSelectTime_NotOffered(t *testing.T) {
	availability := &fakeAvailability{slots: defaultSlots()}
	m := NewManager(availability, &fakeCreator{}, nopLogger{})
	ctx := context.Background()

	flow := m.Start(ctx)
	_, err := m.SelectDate(ctx, flow.ID, testDate)
	require.NoError(t, err)

	_, err = m.SelectTime(ctx, flow.ID, "12:00")
	assert.ErrorIs(t, err, ErrSlotNotOffered)
}

func TestSelectDate_NoSlots(t *testing.T) {
	availability := &fakeAvailability{slots: []types.TimeString{}}
	m := NewManager(availability, &fakeCreator{}, nopLogger{})
	ctx := context.Background()

	flow := m.Start(ctx)
	_, err := m.SelectDate(ctx, flow.ID, testDate)
	assert.ErrorIs(t, err, ErrNoSlotsAvailable)

	// Сценарий остаётся на шаге выбора даты
	flow, err = m.Get(ctx, flow.ID)
	require.NoError(t, err)
	assert.Equal(t, StateSelectingDate, flow.State)
}

func TestInvalidTransitions(t *testing.T) {
	availability := &fakeAvailability{slots: defaultSlots()}
	m := NewManager(availability, &fakeCreator{}, nopLogger{})
	ctx := context.Background()

	flow := m.Start(ctx)

	// Из состояния выбора даты нельзя выбрать время или подтвердить
	_, err := m.SelectTime(ctx, flow.ID, "10:00")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, _, err = m.Confirm(ctx, flow.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = m.SubmitDetails(ctx, flow.ID, "a", "a@b.c", "1")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitDetails_Missing(t *testing.T) {
	availability := &fakeAvailability{slots: defaultSlots()}
	m := NewManager(availability, &fakeCreator{}, nopLogger{})
	ctx := context.Background()

	flow := m.Start(ctx)
	_, err := m.SelectDate(ctx, flow.ID, testDate)
	require.NoError(t, err)
	_, err = m.SelectTime(ctx, flow.ID, "10:00")
	require.NoError(t, err)

	_, err = m.SubmitDetails(ctx, flow.ID, "María García", "  ", "+34600111222")
	assert.ErrorIs(t, err, ErrMissingDetails)
}

func TestConfirm_SlotConflict(t *testing.T) {
	// Слот заняли между выбором и подтверждением: сценарий возвращается
	// к выбору времени с обновлённым списком без занятого слота
	availability := &fakeAvailability{slots: defaultSlots()}
	creator := &fakeCreator{err: create_booking.ErrSlotTaken}
	m := NewManager(availability, creator, nopLogger{})
	ctx := context.Background()

	id := advanceToReviewing(t, m)

	availability.slots = []types.TimeString{"10:00", "11:00"}

	flow, created, err := m.Confirm(ctx, id)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, created)

	assert.Equal(t, StateSelectingTime, flow.State)
	assert.Empty(t, flow.StartTime)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, flow.OfferedSlots)

	// Контактные данные сохраняются для повторного подтверждения
	assert.Equal(t, "María García", flow.Name)
}

func TestBack(t *testing.T) {
	availability := &fakeAvailability{slots: defaultSlots()}
	m := NewManager(availability, &fakeCreator{}, nopLogger{})
	ctx := context.Background()

	id := advanceToReviewing(t, m)

	flow, err := m.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateEnteringDetails, flow.State)

	flow, err = m.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateSelectingTime, flow.State)
	assert.Empty(t, flow.StartTime)

	flow, err = m.Back(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StateSelectingDate, flow.State)
	assert.True(t, flow.Date.IsZero())

	_, err = m.Back(ctx, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAbandon(t *testing.T) {
	availability := &fakeAvailability{slots: defaultSlots()}
	m := NewManager(availability, &fakeCreator{}, nopLogger{})
	ctx := context.Background()

	flow := m.Start(ctx)

	err := m.Abandon(ctx, flow.ID)
	require.NoError(t, err)

	_, err = m.Get(ctx, flow.ID)
	assert.ErrorIs(t, err, ErrFlowNotFound)

	err = m.Abandon(ctx, flow.ID)
	assert.ErrorIs(t, err, ErrFlowNotFound)
}

func TestUnknownFlow(t *testing.T) {
	m := NewManager(&fakeAvailability{}, &fakeCreator{}, nopLogger{})

	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrFlowNotFound)
}
