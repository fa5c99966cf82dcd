package get_schedule

import (
	"net/http"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/api/handlers"
	"github.com/41hairstudio/HS-BookingService/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

// ScheduleResponse HTTP модель расписания на дату
type ScheduleResponse struct {
	Date    string `json:"date"`
	Open    bool   `json:"open"`
	Hours   string `json:"hours"`
	Weekday string `json:"weekday"`
}

type Handler struct {
	schedule SchedulePolicy
	logger   Logger
}

func NewHandler(schedule SchedulePolicy, logger Logger) *Handler {
	return &Handler{
		schedule: schedule,
		logger:   logger,
	}
}

// Handle GET /api/v1/schedule
// Query params: date (optional, YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := time.Now()

	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /schedule - Invalid date format: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	response := &ScheduleResponse{
		Date:    date.Format(domain.DateFormat),
		Open:    h.schedule.IsOpenWeekday(date),
		Hours:   h.schedule.Describe(date),
		Weekday: date.Weekday().String(),
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
