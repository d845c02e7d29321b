package decline_booking

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	declineBooking "github.com/m04kA/SMC-HotelBookingService/internal/usecase/decline_booking"
)

// DeclineBookingRequest HTTP request model
type DeclineBookingRequest struct {
	Reason string `json:"reason"`
}

// DeclineBookingResponse HTTP response model
type DeclineBookingResponse struct {
	Declined         *models.DeclinedBookingResponse `json:"declined"`
	NotificationSent bool                            `json:"notificationSent"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DeclineBookingRequest) ToUseCaseRequest(bookingID int64, staffID *int64) *declineBooking.Request {
	return &declineBooking.Request{
		BookingID: bookingID,
		Reason:    r.Reason,
		StaffID:   staffID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *declineBooking.Response) *DeclineBookingResponse {
	return &DeclineBookingResponse{
		Declined:         models.FromDomainDeclined(resp.Declined),
		NotificationSent: resp.NotificationSent,
	}
}
