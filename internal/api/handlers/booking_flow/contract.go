package booking_flow

import (
	"context"
	"time"

	"github.com/41hairstudio/HS-BookingService/internal/bookingflow"
	"github.com/41hairstudio/HS-BookingService/internal/usecase/create_booking"
	"github.com/41hairstudio/HS-BookingService/pkg/types"
)

// FlowManager интерфейс менеджера сценариев записи
type FlowManager interface {
	Start(ctx context.Context) *bookingflow.Flow
	Get(ctx context.Context, id string) (*bookingflow.Flow, error)
	SelectDate(ctx context.Context, id string, date time.Time) (*bookingflow.Flow, error)
	SelectTime(ctx context.Context, id string, startTime types.TimeString) (*bookingflow.Flow, error)
	SubmitDetails(ctx context.Context, id string, name, email, phone string) (*bookingflow.Flow, error)
	Confirm(ctx context.Context, id string) (*bookingflow.Flow, *create_booking.Response, error)
	Back(ctx context.Context, id string) (*bookingflow.Flow, error)
	Abandon(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
