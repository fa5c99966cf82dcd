package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/infra/storage"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

const notifyTimeout = 15 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	reservationStore ReservationStore
	blackouts        BlackoutProvider
	schedule         SchedulePolicy
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationStore ReservationStore,
	blackouts BlackoutProvider,
	schedule SchedulePolicy,
	notifier Notifier,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationStore: reservationStore,
		blackouts:        blackouts,
		schedule:         schedule,
		notifier:         notifier,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{Location: loc},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка занятости и запись выполняются атомарно, а уникальный индекс
// в БД отсекает двойное бронирование даже при параллельных запросах
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s, phone=%s",
		req.Date.Format(domain.DateFormat), req.StartTime, req.Phone)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что дата не в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Проверяем горизонт бронирования
	if !uc.schedule.WithinHorizon(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is beyond booking horizon", req.Date.Format(domain.DateFormat))
		return nil, ErrDateTooFarInFuture
	}

	// 5. Проверяем праздничные дни
	if uc.blackouts.IsBlackout(ctx, req.Date) {
		uc.logger.Warn("CreateBooking: date %s is a public holiday", req.Date.Format(domain.DateFormat))
		return nil, ErrDateUnavailable
	}

	// 6. Проверяем, что время попадает в сетку расписания
	slots := uc.schedule.SlotsForDate(req.Date)
	if len(slots) == 0 {
		uc.logger.Warn("CreateBooking: no working windows on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrDateUnavailable
	}
	if !slotOnGrid(slots, req.StartTime) {
		uc.logger.Warn("CreateBooking: time %s is not on the schedule grid", req.StartTime)
		return nil, ErrInvalidTimeSlot
	}

	// 7. Для сегодняшней даты проверяем, что слот ещё не прошёл
	if isSameDay(req.Date, now) && !req.StartTime.IsAfter(types.NewTimeString(now)) {
		uc.logger.Warn("CreateBooking: slot %s has already passed", req.StartTime)
		return nil, ErrTooLateToBook
	}

	var result *domain.Reservation

	// 8. Проверка занятости и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Получаем активные бронирования на дату с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationStore.ListByDate(txCtx, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		// 8.2. Проверяем доступность слота
		if !domain.IsSlotFree(reservations, req.StartTime, "") {
			uc.logger.Warn("CreateBooking: slot %s %s is already taken",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotTaken
		}

		// 8.3. Создаем бронирование
		reservation := &domain.Reservation{
			Date:        req.Date,
			StartTime:   req.StartTime,
			Name:        strings.TrimSpace(req.Name),
			Email:       strings.TrimSpace(req.Email),
			Phone:       normalizePhone(req.Phone),
			Amount:      req.Amount,
			PaymentType: req.PaymentType,
		}

		created, err := uc.reservationStore.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, storage.ErrSlotTaken) {
				// Уникальный индекс поймал параллельную запись
				uc.logger.Warn("CreateBooking: slot %s %s taken by concurrent request",
					req.Date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created reservation id=%s", result.ID)

	// 9. Отправляем уведомления после коммита
	// Ошибка отправки не влияет на результат бронирования
	uc.dispatchNotification(result)

	return &Response{
		ID:          result.ID,
		Date:        result.Date,
		StartTime:   result.StartTime,
		Name:        result.Name,
		Email:       result.Email,
		Phone:       result.Phone,
		Status:      string(result.Status),
		Amount:      result.Amount,
		PaymentType: result.PaymentType,
		CreatedAt:   result.CreatedAt,
	}, nil
}

// dispatchNotification отправляет подтверждение в фоне,
// чтобы не задерживать ответ клиенту
func (uc *UseCase) dispatchNotification(res *domain.Reservation) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifier.SendConfirmation(ctx, res); err != nil {
			uc.logger.Error("CreateBooking: failed to send confirmation for id=%s: %v", res.ID, err)
		}
	}()
}
