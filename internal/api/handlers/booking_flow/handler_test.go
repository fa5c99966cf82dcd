package booking_flow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/41hairstudio/HS-BookingService/internal/bookingflow"
	"github.com/41hairstudio/HS-BookingService/internal/usecase/create_booking"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

type fakeManager struct {
	flow       *bookingflow.Flow
	created    *create_booking.Response
	confirmErr error
}

func (f *fakeManager) Start(_ context.Context) *bookingflow.Flow { return f.flow }

func (f *fakeManager) Get(_ context.Context, _ string) (*bookingflow.Flow, error) {
	return f.flow, nil
}

func (f *fakeManager) SelectDate(_ context.Context, _ string, _ time.Time) (*bookingflow.Flow, error) {
	return f.flow, nil
}

func (f *fakeManager) SelectTime(_ context.Context, _ string, _ types.TimeString) (*bookingflow.Flow, error) {
	return f.flow, nil
}

func (f *fakeManager) SubmitDetails(_ context.Context, _, _, _, _ string) (*bookingflow.Flow, error) {
	return f.flow, nil
}

func (f *fakeManager) Confirm(_ context.Context, _ string) (*bookingflow.Flow, *create_booking.Response, error) {
	return f.flow, f.created, f.confirmErr
}

func (f *fakeManager) Back(_ context.Context, _ string) (*bookingflow.Flow, error) {
	return f.flow, nil
}

func (f *fakeManager) Abandon(_ context.Context, _ string) error { return nil }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func confirmRequest(t *testing.T, manager FlowManager) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(manager, nopLogger{})

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/booking-flows/{flowId}/confirm", handler.HandleConfirm).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/booking-flows/f-1/confirm", nil))
	return rec
}

func TestHandleConfirm_BookingErrorsMappedToClientStatus(t *testing.T) {
	flow := &bookingflow.Flow{ID: "f-1", State: bookingflow.StateReviewing}

	tests := []struct {
		name       string
		confirmErr error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "slot time passed while reviewing",
			confirmErr: create_booking.ErrTooLateToBook,
			wantStatus: http.StatusConflict,
			wantMsg:    msgTimePassed,
		},
		{
			name:       "date passed while reviewing",
			confirmErr: create_booking.ErrInvalidDate,
			wantStatus: http.StatusConflict,
			wantMsg:    msgDateInPast,
		},
		{
			name:       "date became unavailable",
			confirmErr: create_booking.ErrDateUnavailable,
			wantStatus: http.StatusConflict,
			wantMsg:    msgDateUnavailable,
		},
		{
			name:       "date beyond booking horizon",
			confirmErr: create_booking.ErrDateTooFarInFuture,
			wantStatus: http.StatusBadRequest,
			wantMsg:    msgDateTooFar,
		},
		{
			name:       "time not on schedule grid",
			confirmErr: create_booking.ErrInvalidTimeSlot,
			wantStatus: http.StatusConflict,
			wantMsg:    msgSlotNotOffered,
		},
		{
			name:       "slot taken",
			confirmErr: create_booking.ErrSlotTaken,
			wantStatus: http.StatusConflict,
			wantMsg:    msgSlotTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := confirmRequest(t, &fakeManager{flow: flow, confirmErr: tt.confirmErr})

			require.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestHandleConfirm_SlotConflictReturnsUpdatedFlow(t *testing.T) {
	flow := &bookingflow.Flow{
		ID:           "f-1",
		State:        bookingflow.StateSelectingTime,
		Date:         time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
		OfferedSlots: []types.TimeString{"10:30", "11:00"},
		Name:         "Ana",
	}

	rec := confirmRequest(t, &fakeManager{flow: flow, confirmErr: bookingflow.ErrSlotConflict})

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ConfirmResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgSlotConflict, resp.Error)
	require.NotNil(t, resp.Flow)
	assert.Equal(t, string(bookingflow.StateSelectingTime), resp.Flow.State)
	assert.Equal(t, []string{"10:30", "11:00"}, resp.Flow.OfferedSlots)
	assert.Nil(t, resp.Reservation)
}

func TestHandleConfirm_InternalErrorStaysInternal(t *testing.T) {
	flow := &bookingflow.Flow{ID: "f-1", State: bookingflow.StateReviewing}

	rec := confirmRequest(t, &fakeManager{flow: flow, confirmErr: create_booking.ErrInternal})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
