package reservations

import (
	"context"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
)

// ReservationStore интерфейс хранилища бронирований
type ReservationStore interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByPhone(ctx context.Context, phone string, from time.Time) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время в зоне заведения
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.Location)
}
