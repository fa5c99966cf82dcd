package reschedule_booking

import (
	"time"

	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// Request запрос на перенос бронирования
type Request struct {
	ID        string
	Date      time.Time
	StartTime types.TimeString
}

// Response ответ с обновлённым бронированием
type Response struct {
	ID        string
	Date      time.Time
	StartTime types.TimeString
	Name      string
	Email     string
	Phone     string
	Status    string
}
