package get_calendar_file

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/41hairstudio/HS-BookingService/internal/api/handlers"
	"github.com/41hairstudio/HS-BookingService/internal/service/reservations"
)

const msgReservationNotFound = "бронирование не найдено"

type Handler struct {
	service  ReservationsService
	calendar CalendarBuilder
	logger   Logger
}

func NewHandler(service ReservationsService, calendar CalendarBuilder, logger Logger) *Handler {
	return &Handler{
		service:  service,
		calendar: calendar,
		logger:   logger,
	}
}

// Handle GET /api/v1/reservations/{reservationId}/calendar
// Query params: reminder (optional, true добавляет напоминание за день)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	reservation, err := h.service.GetByID(r.Context(), reservationID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound),
			errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations/{id}/calendar - Not found: id=%s", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)
		default:
			h.logger.Error("GET /reservations/{id}/calendar - Failed to get reservation: id=%s, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	withReminder := r.URL.Query().Get("reminder") == "true"
	ics := h.calendar.Build(reservation, withReminder)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", h.calendar.FileName(reservation)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics))

	h.logger.Info("GET /reservations/{id}/calendar - Calendar file served: id=%s", reservationID)
}
