package bookingflow

import (
	"time"

	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// State состояние сценария записи
type State string

const (
	// StateSelectingDate клиент выбирает дату
	StateSelectingDate State = "selecting_date"
	// StateSelectingTime клиент выбирает время из предложенных слотов
	StateSelectingTime State = "selecting_time"
	// StateEnteringDetails клиент заполняет контактные данные
	StateEnteringDetails State = "entering_details"
	// StateReviewing клиент проверяет данные перед подтверждением
	StateReviewing State = "reviewing"
	// StateConfirmed бронирование создано, сценарий завершён
	StateConfirmed State = "confirmed"
)

// Flow сценарий записи одного клиента
// Накапливает выбор по шагам: дата -> время -> контактные данные ->
// проверка -> подтверждение
type Flow struct {
	ID    string
	State State

	Date         time.Time
	StartTime    types.TimeString
	OfferedSlots []types.TimeString
	Degraded     bool

	Name  string
	Email string
	Phone string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// snapshot возвращает копию сценария для безопасной выдачи наружу
func (f *Flow) snapshot() *Flow {
	copied := *f
	copied.OfferedSlots = append([]types.TimeString(nil), f.OfferedSlots...)
	return &copied
}

// offered проверяет, что время входит в предложенные слоты
func (f *Flow) offered(startTime types.TimeString) bool {
	for _, slot := range f.OfferedSlots {
		if slot == startTime {
			return true
		}
	}
	return false
}
