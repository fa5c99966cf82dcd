package get_available_slots

import (
	"time"

	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// Request запрос на получение доступных слотов
type Request struct {
	Date time.Time
}

// Response ответ со списком доступных слотов
// Degraded = true означает, что список собран без учёта существующих
// бронирований из-за недоступности хранилища
type Response struct {
	Date     time.Time
	Slots    []types.TimeString
	Degraded bool
}
