package blackouts

import (
	"context"
	"sync"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
)

// Service поставщик заблокированных дат (праздников)
// Загружает список праздников один раз на год и кеширует его в памяти
//
// Отказ провайдера не блокирует запись: при недоступности API возвращается
// пустой набор дат, и ни один день не считается праздничным. Ошибка не
// кешируется - следующий запрос повторит загрузку
type Service struct {
	client  HolidayClient
	enabled bool
	log     Logger

	mu    sync.RWMutex
	cache map[int]map[string]struct{} // год -> набор дат YYYY-MM-DD
}

// NewService создает новый экземпляр сервиса заблокированных дат
func NewService(client HolidayClient, enabled bool, log Logger) *Service {
	return &Service{
		client:  client,
		enabled: enabled,
		log:     log,
		cache:   make(map[int]map[string]struct{}),
	}
}

// IsBlackout проверяет, является ли дата праздничным днём
func (s *Service) IsBlackout(ctx context.Context, date time.Time) bool {
	if !s.enabled {
		return false
	}

	set := s.blackoutSet(ctx, date.Year())
	_, blocked := set[date.Format(domain.DateFormat)]
	return blocked
}

// blackoutSet возвращает набор заблокированных дат на год, загружая его при необходимости
func (s *Service) blackoutSet(ctx context.Context, year int) map[string]struct{} {
	s.mu.RLock()
	set, ok := s.cache[year]
	s.mu.RUnlock()
	if ok {
		return set
	}

	holidays, err := s.client.GetPublicHolidays(ctx, year)
	if err != nil {
		s.log.Warn("Blackouts: holiday provider unavailable for year=%d, no blackout enforced: %v", year, err)
		return map[string]struct{}{}
	}

	set = make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Date] = struct{}{}
	}

	s.mu.Lock()
	s.cache[year] = set
	s.mu.Unlock()

	s.log.Info("Blackouts: cached %d blackout dates for year=%d", len(set), year)
	return set
}
