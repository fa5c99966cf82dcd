package get_available_slots

import (
	"context"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	reservationStore ReservationStore
	blackouts        BlackoutProvider
	schedule         SchedulePolicy
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationStore ReservationStore,
	blackouts BlackoutProvider,
	schedule SchedulePolicy,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationStore: reservationStore,
		blackouts:        blackouts,
		schedule:         schedule,
		timeProvider:     &RealTimeProvider{Location: loc},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Порядок вычисления: сетка расписания -> фильтр прошедших на сегодня ->
// вычитание занятых. Отмена бронирования не требует отдельных действий:
// слот снова появится в результате, так как отменённые записи не
// попадают в выборку занятых
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем, что дата не в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Проверяем горизонт бронирования
	if !uc.schedule.WithinHorizon(req.Date, now) {
		uc.logger.Warn("GetAvailableSlots: date %s is beyond booking horizon", req.Date.Format(domain.DateFormat))
		return nil, ErrDateTooFarInFuture
	}

	// 5. Проверяем праздничные дни
	if uc.blackouts.IsBlackout(ctx, req.Date) {
		uc.logger.Info("GetAvailableSlots: date %s is a public holiday", req.Date.Format(domain.DateFormat))
		return &Response{Date: req.Date, Slots: []types.TimeString{}}, nil
	}

	// 6. Генерируем сетку слотов по расписанию
	candidates := uc.schedule.SlotsForDate(req.Date)
	if len(candidates) == 0 {
		return &Response{Date: req.Date, Slots: []types.TimeString{}}, nil
	}

	// 7. Для сегодняшней даты отбрасываем прошедшие слоты
	// Слот, равный текущему времени, тоже отбрасывается
	if isSameDay(req.Date, now) {
		candidates = filterPastSlots(candidates, types.NewTimeString(now))
	}

	// 8. Получаем бронирования на эту дату
	// При недоступности хранилища возвращаем сетку без вычитания занятых,
	// помечая ответ как деградированный: финальную проверку слота
	// всё равно выполняет создание бронирования
	reservations, err := uc.reservationStore.ListByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list reservations, serving degraded response: %v", err)
		return &Response{Date: req.Date, Slots: candidates, Degraded: true}, nil
	}

	// 9. Вычитаем занятые слоты
	booked := domain.BookedTimes(reservations)
	available := make([]types.TimeString, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := booked[slot]; taken {
			continue
		}
		available = append(available, slot)
	}

	uc.logger.Info("GetAvailableSlots: date=%s, %d of %d slots available",
		req.Date.Format(domain.DateFormat), len(available), len(candidates))

	return &Response{Date: req.Date, Slots: available}, nil
}

// filterPastSlots оставляет только слоты строго позже текущего времени
func filterPastSlots(slots []types.TimeString, current types.TimeString) []types.TimeString {
	filtered := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if slot.IsAfter(current) {
			filtered = append(filtered, slot)
		}
	}
	return filtered
}
