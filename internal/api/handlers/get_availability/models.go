package get_availability

import (
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
	getAvailableSlots "github.com/41hairstudio/HS-BookingService/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP модель доступных слотов на дату
type AvailabilityResponse struct {
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
	Degraded bool     `json:"degraded,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailabilityResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
		Degraded: resp.Degraded,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{Date: date}, nil
}
