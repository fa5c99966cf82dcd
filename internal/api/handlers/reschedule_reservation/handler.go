package reschedule_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/41hairstudio/HS-BookingService/internal/api/handlers"
	"github.com/41hairstudio/HS-BookingService/internal/domain"
	rescheduleBooking "github.com/41hairstudio/HS-BookingService/internal/usecase/reschedule_booking"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

const (
	msgInvalidBody         = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgReservationNotFound = "бронирование не найдено"
	msgReservationClosed   = "бронирование отменено и не может быть перенесено"
	msgDateUnavailable     = "выбранная дата недоступна для записи"
	msgInvalidTimeSlot     = "выбранное время не входит в расписание"
	msgSlotTaken           = "выбранное время уже занято"
	msgDateInPast          = "дата уже прошла"
	msgDateTooFar          = "дата за пределами периода записи"
	msgTooLate             = "выбранное время уже прошло"
)

// RescheduleRequest HTTP модель запроса переноса
type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ReservationResponse HTTP модель бронирования после переноса
type ReservationResponse struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id} - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		ID:        reservationID,
		Date:      date,
		StartTime: types.TimeString(req.Time),
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id} - Not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, rescheduleBooking.ErrReservationCancelled):
			handlers.RespondConflict(w, msgReservationClosed)

		case errors.Is(err, rescheduleBooking.ErrSlotTaken):
			h.logger.Warn("PATCH /reservations/{id} - Slot taken: id=%s, date=%s, time=%s",
				reservationID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, rescheduleBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleBooking.ErrDateUnavailable):
			handlers.RespondBadRequest(w, msgDateUnavailable)

		case errors.Is(err, rescheduleBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLate)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBody)

		default:
			h.logger.Error("PATCH /reservations/{id} - Failed to reschedule: id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id} - Rescheduled successfully: id=%s, date=%s, time=%s",
		reservationID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusOK, &ReservationResponse{
		ID:    result.ID,
		Date:  result.Date.Format(domain.DateFormat),
		Time:  result.StartTime.String(),
		Name:  result.Name,
		Phone: result.Phone,
	})
}
