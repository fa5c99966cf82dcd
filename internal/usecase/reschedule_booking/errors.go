package reschedule_booking

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reschedule_booking: reservation not found")

	// ErrReservationCancelled возвращается при попытке перенести отменённое бронирование
	ErrReservationCancelled = errors.New("reschedule_booking: reservation is cancelled")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами горизонта бронирования
	ErrDateTooFarInFuture = errors.New("reschedule_booking: date is too far in the future")

	// ErrDateUnavailable возвращается для закрытых дней (выходной или праздник)
	ErrDateUnavailable = errors.New("reschedule_booking: date is not available for booking")

	// ErrInvalidTimeSlot возвращается, когда время не попадает в сетку расписания
	ErrInvalidTimeSlot = errors.New("reschedule_booking: invalid time slot")

	// ErrTooLateToBook возвращается, когда слот на сегодня уже прошёл
	ErrTooLateToBook = errors.New("reschedule_booking: too late to book this slot")

	// ErrSlotTaken возвращается, когда новый слот уже занят другим бронированием
	ErrSlotTaken = errors.New("reschedule_booking: slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
