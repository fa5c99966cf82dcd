package reservation

import (
	"errors"

	"github.com/41hairstudio/HS-BookingService/internal/infra/storage"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = storage.ErrReservationNotFound

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	// Генерируется ограничением уникальности (reservation_date, start_time)
	ErrSlotTaken = storage.ErrSlotTaken

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
