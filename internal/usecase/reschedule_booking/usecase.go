package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/infra/storage"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// UseCase use case для переноса бронирования на другие дату и время
type UseCase struct {
	reservationStore ReservationStore
	blackouts        BlackoutProvider
	schedule         SchedulePolicy
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationStore ReservationStore,
	blackouts BlackoutProvider,
	schedule SchedulePolicy,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationStore: reservationStore,
		blackouts:        blackouts,
		schedule:         schedule,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{Location: loc},
		logger:           logger,
	}
}

// Execute выполняет use case переноса бронирования
// Перенос на собственный слот разрешён: при проверке занятости
// текущее бронирование исключается из списка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: id=%s, date=%s, time=%s",
		req.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	reservation, err := uc.reservationStore.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, storage.ErrReservationNotFound) {
			uc.logger.Warn("RescheduleBooking: reservation id=%s not found", req.ID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get reservation id=%s: %v", req.ID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	// 3. Отменённое бронирование переносить нельзя
	if !reservation.IsActive() {
		uc.logger.Warn("RescheduleBooking: reservation id=%s is cancelled", req.ID)
		return nil, ErrReservationCancelled
	}

	// 4. Получаем текущее время
	now := uc.timeProvider.Now()

	// 5. Проверяем, что новая дата не в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("RescheduleBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 6. Проверяем горизонт бронирования
	if !uc.schedule.WithinHorizon(req.Date, now) {
		uc.logger.Warn("RescheduleBooking: date %s is beyond booking horizon", req.Date.Format(domain.DateFormat))
		return nil, ErrDateTooFarInFuture
	}

	// 7. Проверяем праздничные дни
	if uc.blackouts.IsBlackout(ctx, req.Date) {
		uc.logger.Warn("RescheduleBooking: date %s is a public holiday", req.Date.Format(domain.DateFormat))
		return nil, ErrDateUnavailable
	}

	// 8. Проверяем, что время попадает в сетку расписания
	slots := uc.schedule.SlotsForDate(req.Date)
	if len(slots) == 0 {
		uc.logger.Warn("RescheduleBooking: no working windows on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrDateUnavailable
	}
	if !slotOnGrid(slots, req.StartTime) {
		uc.logger.Warn("RescheduleBooking: time %s is not on the schedule grid", req.StartTime)
		return nil, ErrInvalidTimeSlot
	}

	// 9. Для сегодняшней даты проверяем, что слот ещё не прошёл
	if isSameDay(req.Date, now) && !req.StartTime.IsAfter(types.NewTimeString(now)) {
		uc.logger.Warn("RescheduleBooking: slot %s has already passed", req.StartTime)
		return nil, ErrTooLateToBook
	}

	// 10. Проверка занятости и обновление в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Получаем активные бронирования на новую дату с блокировкой
		reservations, err := uc.reservationStore.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		// 10.2. Проверяем доступность слота, исключая собственное бронирование
		if !domain.IsSlotFree(reservations, req.StartTime, req.ID) {
			uc.logger.Warn("RescheduleBooking: slot %s %s is already taken",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotTaken
		}

		// 10.3. Обновляем дату и время
		if err := uc.reservationStore.Update(txCtx, req.ID, req.Date, req.StartTime); err != nil {
			switch {
			case errors.Is(err, storage.ErrSlotTaken):
				uc.logger.Warn("RescheduleBooking: slot %s %s taken by concurrent request",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotTaken
			case errors.Is(err, storage.ErrReservationNotFound):
				return ErrReservationNotFound
			default:
				uc.logger.Error("RescheduleBooking: failed to update reservation id=%s: %v", req.ID, err)
				return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully moved reservation id=%s to %s %s",
		req.ID, req.Date.Format(domain.DateFormat), req.StartTime)

	return &Response{
		ID:        reservation.ID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Name:      reservation.Name,
		Email:     reservation.Email,
		Phone:     reservation.Phone,
		Status:    string(reservation.Status),
	}, nil
}
