package checkout_booking

import "github.com/m04kA/SMC-HotelBookingService/internal/domain"

// Request модель запроса на выезд гостя
type Request struct {
	BookingID int64
	StaffID   *int64
}

// Response модель ответа с записью истории
type Response struct {
	Record *domain.BookingHistoryRecord
}
