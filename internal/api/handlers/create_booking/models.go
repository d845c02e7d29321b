package create_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID   string                `json:"roomId"`
	CheckIn  string                `json:"checkIn"`  // "2025-01-10"
	CheckOut string                `json:"checkOut"` // "2025-01-12"
	Guest    models.GuestRequest   `json:"guest"`
	Payment  models.PaymentRequest `json:"payment"`
	Notes    *string               `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking          *models.BookingResponse `json:"booking"`
	NotificationSent bool                    `json:"notificationSent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Бронирования через этот эндпоинт создает персонал на стойке
func (r *CreateBookingRequest) ToUseCaseRequest(staffID int64) (*createBooking.Request, error) {
	roomID, err := uuid.Parse(r.RoomID)
	if err != nil {
		return nil, fmt.Errorf("roomId: %w", err)
	}

	checkIn, err := types.ParseCalendarDate(r.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("checkIn: %w", err)
	}

	checkOut, err := types.ParseCalendarDate(r.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("checkOut: %w", err)
	}

	return &createBooking.Request{
		RoomID:    roomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Source:    domain.SourceStaff,
		Guest:     r.Guest.ToDomain(),
		Payment:   r.Payment.ToDomain(),
		Notes:     r.Notes,
		CreatedBy: &staffID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:          models.FromDomainBooking(resp.Booking),
		NotificationSent: resp.NotificationSent,
	}
}
