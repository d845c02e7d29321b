package booking_flow

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-HotelBookingService/internal/api/handlers/search_rooms"
	"github.com/m04kA/SMC-HotelBookingService/internal/flow"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	bookingFlow "github.com/m04kA/SMC-HotelBookingService/internal/usecase/booking_flow"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// SubmitDatesRequest HTTP request model
type SubmitDatesRequest struct {
	CheckIn  string `json:"checkIn"`  // "2025-01-10"
	CheckOut string `json:"checkOut"` // "2025-01-12"
	Guests   int    `json:"guests"`
}

// SelectRoomRequest HTTP request model
type SelectRoomRequest struct {
	RoomID string `json:"roomId"`
}

// SubmitGuestRequest HTTP request model
type SubmitGuestRequest struct {
	Guest   models.GuestRequest    `json:"guest"`
	Payment *models.PaymentRequest `json:"payment,omitempty"`
	Notes   *string                `json:"notes,omitempty"`
}

// FlowResponse состояние сценария
type FlowResponse struct {
	Token     uuid.UUID               `json:"token"`
	Stage     string                  `json:"stage"`
	Revision  int                     `json:"revision"`
	CheckIn   *types.CalendarDate     `json:"checkIn,omitempty"`
	CheckOut  *types.CalendarDate     `json:"checkOut,omitempty"`
	Nights    int                     `json:"nights"`
	Room      *SelectedRoomResponse   `json:"room,omitempty"`
	Guest     *models.GuestResponse   `json:"guest,omitempty"`
	Payment   *models.PaymentResponse `json:"payment,omitempty"`
	Notes     *string                 `json:"notes,omitempty"`
	BookingID *int64                  `json:"bookingId,omitempty"`
}

// SelectedRoomResponse выбранный номер с котировкой
type SelectedRoomResponse struct {
	RoomID     uuid.UUID `json:"roomId"`
	RoomName   string    `json:"roomName"`
	RatePerDay string    `json:"ratePerDay"`
	TotalCost  string    `json:"totalCost"`
}

// SubmitDatesResponse HTTP response model
type SubmitDatesResponse struct {
	Flow  *FlowResponse                    `json:"flow"`
	Rooms []search_rooms.OfferedRoomResult `json:"rooms"`
}

// ConfirmResponse HTTP response model
type ConfirmResponse struct {
	Flow             *FlowResponse           `json:"flow"`
	BookingID        int64                   `json:"bookingId"`
	Booking          *models.BookingResponse `json:"booking,omitempty"`
	NotificationSent bool                    `json:"notificationSent"`
	AlreadySubmitted bool                    `json:"alreadySubmitted"`
}

// ParseTarget читает токен сценария из пути и ожидаемую ревизию из query
func ParseTarget(r *http.Request) (bookingFlow.Target, error) {
	token, err := uuid.Parse(mux.Vars(r)["token"])
	if err != nil {
		return bookingFlow.Target{}, fmt.Errorf("token: %w", err)
	}

	target := bookingFlow.Target{Token: token}
	if s := r.URL.Query().Get("revision"); s != "" {
		revision, err := strconv.Atoi(s)
		if err != nil {
			return bookingFlow.Target{}, fmt.Errorf("revision: %w", err)
		}
		target.Revision = &revision
	}

	return target, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitDatesRequest) ToUseCaseRequest(target bookingFlow.Target) (*bookingFlow.SubmitDatesRequest, error) {
	checkIn, err := types.ParseCalendarDate(r.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("checkIn: %w", err)
	}
	checkOut, err := types.ParseCalendarDate(r.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("checkOut: %w", err)
	}

	return &bookingFlow.SubmitDatesRequest{
		Target:   target,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   r.Guests,
	}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SelectRoomRequest) ToUseCaseRequest(target bookingFlow.Target) (*bookingFlow.SelectRoomRequest, error) {
	roomID, err := uuid.Parse(r.RoomID)
	if err != nil {
		return nil, fmt.Errorf("roomId: %w", err)
	}
	return &bookingFlow.SelectRoomRequest{Target: target, RoomID: roomID}, nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Без данных оплаты гость платит онлайн позже, сумма оплаты 0
func (r *SubmitGuestRequest) ToUseCaseRequest(target bookingFlow.Target) *bookingFlow.SubmitGuestRequest {
	req := &bookingFlow.SubmitGuestRequest{
		Target: target,
		Guest:  r.Guest.ToDomain(),
		Notes:  r.Notes,
	}
	if r.Payment != nil {
		req.Payment = r.Payment.ToDomain()
	}
	return req
}

// FromFlow конвертирует состояние сценария в HTTP response
func FromFlow(c flow.Context) *FlowResponse {
	resp := &FlowResponse{
		Token:    c.ID(),
		Stage:    string(c.Stage()),
		Revision: c.Revision(),
		Nights:   c.Nights(),
		Notes:    c.Notes(),
	}

	if !c.CheckIn().IsZero() {
		checkIn, checkOut := c.CheckIn(), c.CheckOut()
		resp.CheckIn = &checkIn
		resp.CheckOut = &checkOut
	}

	if room, ok := c.Room(); ok {
		resp.Room = &SelectedRoomResponse{
			RoomID:     room.RoomID,
			RoomName:   room.RoomName,
			RatePerDay: room.RatePerDay.String(),
			TotalCost:  room.Quote.TotalCost.String(),
		}
	}

	if guest, ok := c.Guest(); ok {
		resp.Guest = &models.GuestResponse{
			FirstName: guest.FirstName,
			LastName:  guest.LastName,
			Email:     guest.Email,
			Phone:     guest.Phone,
			Adults:    guest.Adults,
			Children:  guest.Children,
		}
	}

	if payment, ok := c.Payment(); ok {
		resp.Payment = &models.PaymentResponse{
			Method:     string(payment.Method),
			AmountPaid: payment.AmountPaid.String(),
			Reference:  payment.Reference,
		}
		if room, ok := c.Room(); ok {
			resp.Payment.Balance = (room.Quote.TotalCost - payment.AmountPaid).String()
		}
	}

	if id, ok := c.BookingID(); ok {
		resp.BookingID = &id
	}

	return resp
}

// FromConfirmResponse конвертирует результат подтверждения в HTTP response
func FromConfirmResponse(resp *bookingFlow.ConfirmResponse) *ConfirmResponse {
	return &ConfirmResponse{
		Flow:             FromFlow(resp.Flow),
		BookingID:        resp.BookingID,
		Booking:          models.FromDomainBooking(resp.Booking),
		NotificationSent: resp.NotificationSent,
		AlreadySubmitted: resp.AlreadySubmitted,
	}
}
