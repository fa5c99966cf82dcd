package domain

import "github.com/41hairstudio/HS-BookingService/pkg/types"

// IsSlotFree проверяет, свободен ли слот startTime среди переданных бронирований
// excludeID позволяет исключить собственное бронирование при переносе - пустая
// строка означает, что исключений нет
//
// Единая точка проверки занятости: используется при создании бронирования,
// при переносе и при финальной проверке перед записью
func IsSlotFree(reservations []*Reservation, startTime types.TimeString, excludeID string) bool {
	for _, r := range reservations {
		if !r.IsActive() {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if r.StartTime == startTime {
			return false
		}
	}
	return true
}

// BookedTimes возвращает времена всех активных бронирований из списка
func BookedTimes(reservations []*Reservation) map[types.TimeString]struct{} {
	booked := make(map[types.TimeString]struct{}, len(reservations))
	for _, r := range reservations {
		if r.IsActive() {
			booked[r.StartTime] = struct{}{}
		}
	}
	return booked
}
