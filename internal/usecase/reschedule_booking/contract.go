package reschedule_booking

import (
	"context"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// ReservationStore интерфейс хранилища бронирований
type ReservationStore interface {
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
	Update(ctx context.Context, id string, date time.Time, startTime types.TimeString) error
}

// BlackoutProvider интерфейс провайдера нерабочих дней (праздники)
type BlackoutProvider interface {
	IsBlackout(ctx context.Context, date time.Time) bool
}

// SchedulePolicy интерфейс расписания заведения
type SchedulePolicy interface {
	SlotsForDate(date time.Time) []types.TimeString
	WithinHorizon(date, now time.Time) bool
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
