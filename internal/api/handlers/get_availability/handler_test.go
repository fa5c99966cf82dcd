package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/41hairstudio/HS-BookingService/internal/usecase/get_available_slots"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	useCase := &fakeUseCase{
		resp: &getAvailableSlots.Response{
			Date:  time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			Slots: []types.TimeString{"10:00", "10:30"},
		},
	}
	h := NewHandler(useCase, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2025-03-12", nil)
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-12", body.Date)
	assert.Equal(t, []string{"10:00", "10:30"}, body.Slots)
	assert.False(t, body.Degraded)
}

func TestHandle_MissingDate(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_PastDate(t *testing.T) {
	h := NewHandler(&fakeUseCase{err: getAvailableSlots.ErrInvalidDate}, nopLogger{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?date=2020-01-01", nil)
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
