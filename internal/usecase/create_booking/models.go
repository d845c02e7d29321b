package create_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	RoomID    uuid.UUID
	CheckIn   types.CalendarDate
	CheckOut  types.CalendarDate
	Source    domain.BookingSource
	Guest     domain.Guest
	Payment   domain.Payment
	Notes     *string
	CreatedBy *int64 // ID сотрудника для бронирований со стойки
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking          *domain.Booking
	NotificationSent bool // false, если письмо не отправлено; бронирование при этом создано
}
