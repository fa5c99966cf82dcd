package booking_flow

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/41hairstudio/HS-BookingService/internal/api/handlers"
	"github.com/41hairstudio/HS-BookingService/internal/bookingflow"
	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/usecase/create_booking"
	"github.com/41hairstudio/HS-BookingService/internal/usecase/get_available_slots"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

const (
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast        = "дата уже прошла"
	msgDateTooFar        = "дата за пределами периода записи"
	msgFlowNotFound      = "сценарий записи не найден"
	msgInvalidTransition = "операция недоступна на текущем шаге"
	msgSlotNotOffered    = "выбранное время недоступно"
	msgNoSlots           = "на выбранную дату нет свободного времени"
	msgMissingDetails    = "имя, email и телефон обязательны"
	msgSlotConflict      = "выбранное время только что заняли, выберите другое"
	msgSlotTaken         = "выбранное время уже занято"
	msgTimePassed        = "выбранное время уже прошло, выберите другое"
	msgDateUnavailable   = "в выбранную дату запись недоступна"
)

type Handler struct {
	manager FlowManager
	logger  Logger
}

func NewHandler(manager FlowManager, logger Logger) *Handler {
	return &Handler{
		manager: manager,
		logger:  logger,
	}
}

// HandleStart POST /api/v1/booking-flows
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	flow := h.manager.Start(r.Context())

	h.logger.Info("POST /booking-flows - Flow started: id=%s", flow.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromFlow(flow))
}

// HandleGet GET /api/v1/booking-flows/{flowId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	flow, err := h.manager.Get(r.Context(), flowID)
	if err != nil {
		h.respondFlowError(w, "GET /booking-flows/{id}", flowID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromFlow(flow))
}

// HandleSelectDate POST /api/v1/booking-flows/{flowId}/date
func (h *Handler) HandleSelectDate(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	var req SelectDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-flows/{id}/date - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /booking-flows/{id}/date - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	flow, err := h.manager.SelectDate(r.Context(), flowID, date)
	if err != nil {
		switch {
		case errors.Is(err, get_available_slots.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)
		case errors.Is(err, get_available_slots.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)
		case errors.Is(err, bookingflow.ErrNoSlotsAvailable):
			handlers.RespondConflict(w, msgNoSlots)
		default:
			h.respondFlowError(w, "POST /booking-flows/{id}/date", flowID, err)
		}
		return
	}

	h.logger.Info("POST /booking-flows/{id}/date - Date selected: flow=%s, date=%s", flowID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromFlow(flow))
}

// HandleSelectTime POST /api/v1/booking-flows/{flowId}/time
func (h *Handler) HandleSelectTime(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	var req SelectTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-flows/{id}/time - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	flow, err := h.manager.SelectTime(r.Context(), flowID, types.TimeString(req.Time))
	if err != nil {
		if errors.Is(err, bookingflow.ErrSlotNotOffered) {
			h.logger.Warn("POST /booking-flows/{id}/time - Slot not offered: flow=%s, time=%s", flowID, req.Time)
			handlers.RespondBadRequest(w, msgSlotNotOffered)
			return
		}
		h.respondFlowError(w, "POST /booking-flows/{id}/time", flowID, err)
		return
	}

	h.logger.Info("POST /booking-flows/{id}/time - Time selected: flow=%s, time=%s", flowID, req.Time)
	handlers.RespondJSON(w, http.StatusOK, FromFlow(flow))
}

// HandleSubmitDetails POST /api/v1/booking-flows/{flowId}/details
func (h *Handler) HandleSubmitDetails(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	var req SubmitDetailsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-flows/{id}/details - Invalid body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	flow, err := h.manager.SubmitDetails(r.Context(), flowID, req.Name, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, bookingflow.ErrMissingDetails) {
			handlers.RespondBadRequest(w, msgMissingDetails)
			return
		}
		h.respondFlowError(w, "POST /booking-flows/{id}/details", flowID, err)
		return
	}

	h.logger.Info("POST /booking-flows/{id}/details - Details submitted: flow=%s", flowID)
	handlers.RespondJSON(w, http.StatusOK, FromFlow(flow))
}

// HandleConfirm POST /api/v1/booking-flows/{flowId}/confirm
// При конфликте слота возвращает 409 с обновлённым сценарием
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	flow, created, err := h.manager.Confirm(r.Context(), flowID)
	if err != nil {
		switch {
		case errors.Is(err, bookingflow.ErrSlotConflict):
			h.logger.Warn("POST /booking-flows/{id}/confirm - Slot conflict: flow=%s", flowID)
			handlers.RespondJSON(w, http.StatusConflict, &ConfirmResponse{
				Flow:  FromFlow(flow),
				Error: msgSlotConflict,
			})
		case errors.Is(err, create_booking.ErrSlotTaken):
			handlers.RespondConflict(w, msgSlotTaken)
		case errors.Is(err, create_booking.ErrTooLateToBook):
			h.logger.Warn("POST /booking-flows/{id}/confirm - Slot time passed: flow=%s", flowID)
			handlers.RespondConflict(w, msgTimePassed)
		case errors.Is(err, create_booking.ErrInvalidDate):
			handlers.RespondConflict(w, msgDateInPast)
		case errors.Is(err, create_booking.ErrDateUnavailable):
			handlers.RespondConflict(w, msgDateUnavailable)
		case errors.Is(err, create_booking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)
		case errors.Is(err, create_booking.ErrInvalidTimeSlot):
			handlers.RespondConflict(w, msgSlotNotOffered)
		case errors.Is(err, create_booking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingDetails)
		default:
			h.respondFlowError(w, "POST /booking-flows/{id}/confirm", flowID, err)
		}
		return
	}

	response := &ConfirmResponse{Reservation: FromCreateResponse(created)}
	if flow != nil {
		response.Flow = FromFlow(flow)
	}

	h.logger.Info("POST /booking-flows/{id}/confirm - Reservation created: flow=%s, reservation=%s",
		flowID, created.ID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

// HandleBack POST /api/v1/booking-flows/{flowId}/back
func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	flow, err := h.manager.Back(r.Context(), flowID)
	if err != nil {
		h.respondFlowError(w, "POST /booking-flows/{id}/back", flowID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromFlow(flow))
}

// HandleAbandon DELETE /api/v1/booking-flows/{flowId}
func (h *Handler) HandleAbandon(w http.ResponseWriter, r *http.Request) {
	flowID := mux.Vars(r)["flowId"]

	if err := h.manager.Abandon(r.Context(), flowID); err != nil {
		h.respondFlowError(w, "DELETE /booking-flows/{id}", flowID, err)
		return
	}

	h.logger.Info("DELETE /booking-flows/{id} - Flow abandoned: id=%s", flowID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// respondFlowError обрабатывает общие для всех шагов ошибки сценария
func (h *Handler) respondFlowError(w http.ResponseWriter, op, flowID string, err error) {
	switch {
	case errors.Is(err, bookingflow.ErrFlowNotFound):
		h.logger.Warn("%s - Flow not found: id=%s", op, flowID)
		handlers.RespondNotFound(w, msgFlowNotFound)
	case errors.Is(err, bookingflow.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: id=%s", op, flowID)
		handlers.RespondConflict(w, msgInvalidTransition)
	default:
		h.logger.Error("%s - Unexpected error: id=%s, error=%v", op, flowID, err)
		handlers.RespondInternalError(w)
	}
}
