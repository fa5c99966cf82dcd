package bookingflow

import "errors"

var (
	// ErrFlowNotFound возвращается, когда сценарий не найден или уже завершён
	ErrFlowNotFound = errors.New("bookingflow: flow not found")

	// ErrInvalidTransition возвращается при операции, недопустимой в текущем состоянии
	ErrInvalidTransition = errors.New("bookingflow: invalid state transition")

	// ErrSlotNotOffered возвращается при выборе времени не из предложенного списка
	ErrSlotNotOffered = errors.New("bookingflow: slot was not offered")

	// ErrNoSlotsAvailable возвращается при выборе даты без свободных слотов
	ErrNoSlotsAvailable = errors.New("bookingflow: no slots available on this date")

	// ErrMissingDetails возвращается при незаполненных контактных данных
	ErrMissingDetails = errors.New("bookingflow: contact details are incomplete")

	// ErrSlotConflict возвращается, когда выбранный слот заняли во время оформления
	// Сценарий при этом возвращается к выбору времени с обновлённым списком слотов
	ErrSlotConflict = errors.New("bookingflow: slot was taken during checkout")
)
