package bookingflow

import (
	"context"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/usecase/create_booking"
	"github.com/41hairstudio/HS-BookingService/internal/usecase/get_available_slots"
)

// AvailabilityResolver интерфейс use case получения доступных слотов
type AvailabilityResolver interface {
	Execute(ctx context.Context, req *get_available_slots.Request) (*get_available_slots.Response, error)
}

// BookingCreator интерфейс use case создания бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
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
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
