package storage

import "errors"

// Общие ошибки хранилища бронирований
// Возвращаются обеими реализациями (PostgreSQL и Notion), чтобы usecases
// не зависели от конкретного бэкенда
var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("storage: reservation not found")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("storage: slot already taken")
)
