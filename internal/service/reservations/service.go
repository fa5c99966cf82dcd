package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/infra/storage"
)

// Service сервис для управления существующими бронированиями клиента
type Service struct {
	reservationStore ReservationStore
	timeProvider     TimeProvider
	logger           Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservationStore ReservationStore, loc *time.Location, logger Logger) *Service {
	return &Service{
		reservationStore: reservationStore,
		timeProvider:     &RealTimeProvider{Location: loc},
		logger:           logger,
	}
}

// GetByPhone получает предстоящие активные бронирования клиента по номеру телефона
// Номер нормализуется - пробелы не влияют на поиск
func (s *Service) GetByPhone(ctx context.Context, phone string) ([]*domain.Reservation, error) {
	cleanPhone := normalizePhone(phone)
	if cleanPhone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	s.logger.Info("GetByPhone: fetching reservations for phone=%s", cleanPhone)

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	reservations, err := s.reservationStore.ListByPhone(ctx, cleanPhone, today)
	if err != nil {
		s.logger.Error("GetByPhone: storage error for phone=%s: %v", cleanPhone, err)
		return nil, fmt.Errorf("%w: GetByPhone - storage error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByPhone: found %d reservations for phone=%s", len(reservations), cleanPhone)
	return reservations, nil
}

// GetByID получает бронирование по идентификатору
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	reservation, err := s.reservationStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: storage error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - storage error: %v", ErrInternal, err)
	}

	return reservation, nil
}

// Cancel отменяет бронирование
// Отмена идемпотентна на уровне результата: слот сразу становится доступным
func (s *Service) Cancel(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	s.logger.Info("Cancel: cancelling reservation id=%s", id)

	reservation, err := s.reservationStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%s not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: storage error for id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - storage error: %v", ErrInternal, err)
	}

	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%s cannot be cancelled, status=%s", id, reservation.Status)
		return ErrCannotCancel
	}

	if err := s.reservationStore.Cancel(ctx, id); err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: failed to cancel reservation id=%s: %v", id, err)
		return fmt.Errorf("%w: Cancel - storage error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%s", id)
	return nil
}

// normalizePhone убирает пробелы из номера телефона
func normalizePhone(phone string) string {
	return strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
}
