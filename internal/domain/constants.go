package domain

// Длительность слота фиксирована: одна запись занимает полчаса
const SlotDurationMinutes = 30

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultHorizonMonths горизонт бронирования по умолчанию
const DefaultHorizonMonths = 2
