package blackouts

import (
	"context"

	"github.com/41hairstudio/HS-BookingService/internal/integrations/nager"
)

// HolidayClient интерфейс клиента провайдера праздничных дней
type HolidayClient interface {
	GetPublicHolidays(ctx context.Context, year int) ([]nager.PublicHoliday, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
