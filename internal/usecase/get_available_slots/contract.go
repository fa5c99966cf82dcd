package get_available_slots

import (
	"context"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// ReservationStore интерфейс хранилища бронирований
type ReservationStore interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
}

// BlackoutProvider интерфейс провайдера нерабочих дней (праздники)
// Реализация деградирует в открытый режим при недоступности внешнего API
type BlackoutProvider interface {
	IsBlackout(ctx context.Context, date time.Time) bool
}

// SchedulePolicy интерфейс расписания заведения
type SchedulePolicy interface {
	SlotsForDate(date time.Time) []types.TimeString
	WithinHorizon(date, now time.Time) bool
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
// Возвращает время в зоне заведения, чтобы фильтрация прошедших
// слотов на сегодня не зависела от зоны сервера
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время в зоне заведения
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(p.Location)
}
