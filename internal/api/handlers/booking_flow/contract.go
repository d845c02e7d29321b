package booking_flow

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/flow"
	bookingFlow "github.com/m04kA/SMC-HotelBookingService/internal/usecase/booking_flow"
)

type BookingFlowUseCase interface {
	Start(ctx context.Context) (flow.Context, error)
	Get(ctx context.Context, token uuid.UUID) (flow.Context, error)
	Reset(ctx context.Context, token uuid.UUID) (flow.Context, error)
	SubmitDates(ctx context.Context, req *bookingFlow.SubmitDatesRequest) (*bookingFlow.SubmitDatesResponse, error)
	SelectRoom(ctx context.Context, req *bookingFlow.SelectRoomRequest) (flow.Context, error)
	SubmitGuest(ctx context.Context, req *bookingFlow.SubmitGuestRequest) (flow.Context, error)
	Back(ctx context.Context, target bookingFlow.Target) (flow.Context, error)
	Confirm(ctx context.Context, target bookingFlow.Target) (*bookingFlow.ConfirmResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
