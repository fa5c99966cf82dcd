package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/41hairstudio/HS-BookingService/internal/api/handlers"
	"github.com/41hairstudio/HS-BookingService/internal/service/reservations"
)

const (
	msgReservationNotFound = "бронирование не найдено"
	msgCannotCancel        = "бронирование уже отменено"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	if err := h.service.Cancel(r.Context(), reservationID); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("DELETE /reservations/{id} - Cannot cancel: id=%s", reservationID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgReservationNotFound)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel: id=%s, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Cancelled successfully: id=%s", reservationID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
