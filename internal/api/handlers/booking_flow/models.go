package booking_flow

import (
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/bookingflow"
	"github.com/41hairstudio/HS-BookingService/internal/domain"
	"github.com/41hairstudio/HS-BookingService/internal/usecase/create_booking"
)

// SelectDateRequest запрос выбора даты
type SelectDateRequest struct {
	Date string `json:"date"`
}

// SelectTimeRequest запрос выбора времени
type SelectTimeRequest struct {
	Time string `json:"time"`
}

// SubmitDetailsRequest запрос с контактными данными клиента
type SubmitDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// FlowResponse HTTP модель сценария записи
type FlowResponse struct {
	ID           string   `json:"id"`
	State        string   `json:"state"`
	Date         string   `json:"date,omitempty"`
	Time         string   `json:"time,omitempty"`
	OfferedSlots []string `json:"offeredSlots,omitempty"`
	Degraded     bool     `json:"degraded,omitempty"`
	Name         string   `json:"name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
}

// ConfirmResponse HTTP модель результата подтверждения
// При конфликте слота Reservation пуст, а Error описывает причину
type ConfirmResponse struct {
	Flow        *FlowResponse        `json:"flow,omitempty"`
	Reservation *ReservationResponse `json:"reservation,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// ReservationResponse HTTP модель созданного бронирования
type ReservationResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

// FromFlow конвертирует сценарий в HTTP модель
func FromFlow(flow *bookingflow.Flow) *FlowResponse {
	resp := &FlowResponse{
		ID:       flow.ID,
		State:    string(flow.State),
		Time:     flow.StartTime.String(),
		Degraded: flow.Degraded,
		Name:     flow.Name,
		Email:    flow.Email,
		Phone:    flow.Phone,
	}

	if !flow.Date.IsZero() {
		resp.Date = flow.Date.Format(domain.DateFormat)
	}

	if len(flow.OfferedSlots) > 0 {
		resp.OfferedSlots = make([]string, len(flow.OfferedSlots))
		for i, slot := range flow.OfferedSlots {
			resp.OfferedSlots[i] = slot.String()
		}
	}

	return resp
}

// FromCreateResponse конвертирует созданное бронирование в HTTP модель
func FromCreateResponse(resp *create_booking.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:        resp.ID,
		Date:      resp.Date.Format(domain.DateFormat),
		Time:      resp.StartTime.String(),
		Name:      resp.Name,
		Email:     resp.Email,
		Phone:     resp.Phone,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
}
