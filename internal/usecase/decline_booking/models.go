package decline_booking

import "github.com/m04kA/SMC-HotelBookingService/internal/domain"

// Request модель запроса на отклонение онлайн-бронирования
type Request struct {
	BookingID int64
	Reason    string
	StaffID   *int64
}

// Response модель ответа
type Response struct {
	Declined         *domain.DeclinedBooking
	NotificationSent bool
}
