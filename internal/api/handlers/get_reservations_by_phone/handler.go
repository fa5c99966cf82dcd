package get_reservations_by_phone

import (
	"errors"
	"net/http"

	"github.com/41hairstudio/HS-BookingService/internal/api/handlers"
	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/service/reservations"
)

const msgMissingPhone = "номер телефона обязателен"

// ReservationResponse HTTP модель бронирования
type ReservationResponse struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ListResponse HTTP модель списка бронирований
type ListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

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

// Handle GET /api/v1/reservations
// Query params: phone (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		h.logger.Warn("GET /reservations - Missing phone")
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	result, err := h.service.GetByPhone(r.Context(), phone)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			handlers.RespondBadRequest(w, msgMissingPhone)
			return
		}
		h.logger.Error("GET /reservations - Failed to get reservations: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := &ListResponse{Reservations: make([]ReservationResponse, len(result))}
	for i, res := range result {
		response.Reservations[i] = ReservationResponse{
			ID:    res.ID,
			Date:  res.Date.Format(domain.DateFormat),
			Time:  res.StartTime.String(),
			Name:  res.Name,
			Email: res.Email,
			Phone: res.Phone,
		}
	}

	h.logger.Info("GET /reservations - Found %d reservations", len(result))
	handlers.RespondJSON(w, http.StatusOK, response)
}
