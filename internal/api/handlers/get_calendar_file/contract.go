package get_calendar_file

import (
	"context"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
)

type ReservationsService interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
}

type CalendarBuilder interface {
	Build(res *domain.Reservation, withReminder bool) string
	FileName(res *domain.Reservation) string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
