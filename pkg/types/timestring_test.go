package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "10:00", want: "10:00"},
		{name: "valid evening", input: "20:30", want: "20:30"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "missing minutes", input: "10", wantErr: true},
		{name: "hour out of range", input: "25:00", wantErr: true},
		{name: "minute out of range", input: "10:61", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abcd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("20:30")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("21:00"), next)

	// Выход за пределы суток - ошибка
	_, err = TimeString("23:45").AddMinutes(30)
	require.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("10:00").IsBefore("10:30"))
	assert.False(t, TimeString("10:30").IsBefore("10:30"))
	assert.True(t, TimeString("20:30").IsAfter("19:50"))
	assert.False(t, TimeString("19:50").IsAfter("19:50"))
}

func TestTimeString_OnDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	date := time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC)

	got := TimeString("17:30").OnDate(date, loc)
	assert.Equal(t, 2025, got.Year())
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 20, got.Day())
	assert.Equal(t, 17, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, loc, got.Location())
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// TIME колонка приходит как time.Time
	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("10:30"), ts)

	// Строка с секундами
	require.NoError(t, ts.Scan("17:00:00"))
	assert.Equal(t, TimeString("17:00"), ts)

	require.NoError(t, ts.Scan([]byte("09:00")))
	assert.Equal(t, TimeString("09:00"), ts)

	require.Error(t, ts.Scan(42))
}
