package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
)

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

func madrid(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)
	return loc
}

func testBuilder(t *testing.T) *Builder {
	t.Helper()
	b := NewBuilder("41 Hair Studio", "Calle Ejemplo 1, Sevilla", "41hairstudio.com", madrid(t))
	b.timeProvider = &fixedTimeProvider{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	return b
}

func testReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:        "r1",
		Date:      time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		StartTime: "11:00",
		Name:      "María García",
		Email:     "maria@example.com",
		Phone:     "+34600111222",
		Status:    domain.StatusActive,
	}
}

func TestBuild(t *testing.T) {
	b := testBuilder(t)

	ics := b.Build(testReservation(), false)

	// Зимой Мадрид - UTC+1: 11:00 местного = 10:00 UTC
	assert.Contains(t, ics, "DTSTART:20250312T100000Z")
	assert.Contains(t, ics, "DTEND:20250312T103000Z")
	assert.Contains(t, ics, "DTSTAMP:20250310T120000Z")
	assert.Contains(t, ics, "SUMMARY:Cita en 41 Hair Studio")
	// Запятая в адресе экранируется
	assert.Contains(t, ics, "LOCATION:Calle Ejemplo 1\\, Sevilla")
	assert.Contains(t, ics, "UID:")
	assert.Contains(t, ics, "@41hairstudio.com")
	assert.NotContains(t, ics, "BEGIN:VALARM")

	// Все строки завершаются CRLF
	assert.True(t, strings.HasSuffix(ics, "END:VCALENDAR\r\n"))
	for _, line := range strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n") {
		assert.NotContains(t, line, "\n")
	}
}

func TestBuild_WithReminder(t *testing.T) {
	b := testBuilder(t)

	ics := b.Build(testReservation(), true)

	assert.Contains(t, ics, "BEGIN:VALARM")
	assert.Contains(t, ics, "TRIGGER:-P1D")
	assert.Contains(t, ics, "END:VALARM")
}

func TestBuild_SummerTimezoneOffset(t *testing.T) {
	b := testBuilder(t)

	res := testReservation()
	res.Date = time.Date(2025, 7, 16, 0, 0, 0, 0, time.UTC)

	ics := b.Build(res, false)

	// Летом Мадрид - UTC+2: 11:00 местного = 09:00 UTC
	assert.Contains(t, ics, "DTSTART:20250716T090000Z")
}

func TestBuild_OnlyUIDAndStampDiffer(t *testing.T) {
	b := testBuilder(t)

	first := strings.Split(b.Build(testReservation(), false), "\r\n")
	second := strings.Split(b.Build(testReservation(), false), "\r\n")

	require.Equal(t, len(first), len(second))
	for i := range first {
		if strings.HasPrefix(first[i], "UID:") {
			assert.NotEqual(t, first[i], second[i])
			continue
		}
		assert.Equal(t, first[i], second[i])
	}
}

func TestFileName(t *testing.T) {
	b := testBuilder(t)
	assert.Equal(t, "cita-2025-03-12.ics", b.FileName(testReservation()))
}
