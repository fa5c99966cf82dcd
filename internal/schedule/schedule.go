package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/config"
	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

var (
	// ErrInvalidWindow возвращается при некорректном окне работы в конфигурации
	ErrInvalidWindow = errors.New("schedule: invalid working window")
)

// Window окно работы в пределах дня
type Window struct {
	Open  types.TimeString
	Close types.TimeString
}

// WeeklySchedule недельное расписание работы заведения
// Генерирует сетку слотов с шагом 30 минут, включая границу закрытия окна:
// если окно закрывается в 20:30, слот 20:30 доступен для записи
type WeeklySchedule struct {
	windows       [7][]Window // индекс - time.Weekday (0 = воскресенье)
	horizonMonths int
}

// New строит недельное расписание из конфигурации
// Окна weekdays применяются к будним дням без собственного расписания,
// суббота закрыта для онлайн-записи при saturday_online = false,
// воскресенье всегда закрыто
func New(cfg config.ScheduleConfig) (*WeeklySchedule, error) {
	weekdayDefaults, err := parseWindows(cfg.Weekdays)
	if err != nil {
		return nil, err
	}

	s := &WeeklySchedule{horizonMonths: cfg.HorizonMonths}
	if s.horizonMonths == 0 {
		s.horizonMonths = domain.DefaultHorizonMonths
	}

	perDay := map[time.Weekday][]config.WindowConfig{
		time.Monday:    cfg.Monday,
		time.Tuesday:   cfg.Tuesday,
		time.Wednesday: cfg.Wednesday,
		time.Thursday:  cfg.Thursday,
		time.Friday:    cfg.Friday,
	}

	for day, windows := range perDay {
		if len(windows) == 0 {
			s.windows[day] = weekdayDefaults
			continue
		}
		parsed, err := parseWindows(windows)
		if err != nil {
			return nil, err
		}
		s.windows[day] = parsed
	}

	if cfg.SaturdayOnline {
		parsed, err := parseWindows(cfg.Saturday)
		if err != nil {
			return nil, err
		}
		s.windows[time.Saturday] = parsed
	}

	// Воскресенье остаётся без окон

	return s, nil
}

// SlotsForDate возвращает упорядоченную сетку слотов на указанную дату
// Для закрытых дней возвращает пустой список
func (s *WeeklySchedule) SlotsForDate(date time.Time) []types.TimeString {
	slots := make([]types.TimeString, 0)

	for _, w := range s.windows[date.Weekday()] {
		current := w.Open
		for !current.IsAfter(w.Close) {
			slots = append(slots, current)

			next, err := current.AddMinutes(domain.SlotDurationMinutes)
			if err != nil {
				// Достигнут конец суток
				break
			}
			current = next
		}
	}

	return slots
}

// IsOpenWeekday возвращает true, если в этот день недели есть хотя бы одно окно работы
func (s *WeeklySchedule) IsOpenWeekday(date time.Time) bool {
	return len(s.windows[date.Weekday()]) > 0
}

// WithinHorizon проверяет, что дата не выходит за горизонт бронирования
func (s *WeeklySchedule) WithinHorizon(date, now time.Time) bool {
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, s.horizonMonths, 0)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return !dateOnly.After(maxDate)
}

// Describe возвращает человекочитаемое расписание на день, например
// "10:00 - 13:30 y 17:00 - 20:30", или "Cerrado" для закрытого дня
func (s *WeeklySchedule) Describe(date time.Time) string {
	windows := s.windows[date.Weekday()]
	if len(windows) == 0 {
		return "Cerrado"
	}

	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = fmt.Sprintf("%s - %s", w.Open, w.Close)
	}
	return strings.Join(parts, " y ")
}

func parseWindows(configs []config.WindowConfig) ([]Window, error) {
	windows := make([]Window, 0, len(configs))

	for _, wc := range configs {
		open, err := types.NewTimeStringFromString(wc.Open)
		if err != nil {
			return nil, fmt.Errorf("%w: open %q: %v", ErrInvalidWindow, wc.Open, err)
		}
		close, err := types.NewTimeStringFromString(wc.Close)
		if err != nil {
			return nil, fmt.Errorf("%w: close %q: %v", ErrInvalidWindow, wc.Close, err)
		}
		if !open.IsBefore(close) {
			return nil, fmt.Errorf("%w: %s-%s", ErrInvalidWindow, wc.Open, wc.Close)
		}
		windows = append(windows, Window{Open: open, Close: close})
	}

	return windows, nil
}
