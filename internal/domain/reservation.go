package domain

import (
	"time"

	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation бронирование слота в парикмахерской
type Reservation struct {
	ID        string // Идентификатор, назначаемый хранилищем (UUID или id страницы Notion)
	Date      time.Time
	StartTime types.TimeString
	Name      string
	Email     string
	Phone     string
	Status    ReservationStatus

	// Опциональные поля учёта оплаты (заполняются владельцем вручную)
	Amount      *float64
	PaymentType *string

	CancelledAt *time.Time
	CreatedAt   time.Time
}

// IsActive возвращает true, если бронирование не отменено
func (r *Reservation) IsActive() bool {
	return r.Status == StatusActive
}

// CanBeCancelled возвращает true, если бронирование может быть отменено
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusActive
}

// IsFuture возвращает true, если бронирование ещё не началось
func (r *Reservation) IsFuture(now time.Time) bool {
	start := r.StartTime.OnDate(r.Date, now.Location())
	return start.After(now)
}
