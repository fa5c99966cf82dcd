package create_booking

import (
	"time"

	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// Request запрос на создание бронирования
type Request struct {
	Date        time.Time
	StartTime   types.TimeString
	Name        string
	Email       string
	Phone       string
	Amount      *float64
	PaymentType *string
}

// Response ответ с созданным бронированием
type Response struct {
	ID          string
	Date        time.Time
	StartTime   types.TimeString
	Name        string
	Email       string
	Phone       string
	Status      string
	Amount      *float64
	PaymentType *string
	CreatedAt   time.Time
}
