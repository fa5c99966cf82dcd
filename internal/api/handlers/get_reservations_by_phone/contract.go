package get_reservations_by_phone

import (
	"context"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
)

type ReservationsService interface {
	GetByPhone(ctx context.Context, phone string) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
