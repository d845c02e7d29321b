package booking_flow

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/flow"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/search_available_rooms"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Target сценарий, над которым выполняется действие
// Revision опционален: если указан и не совпадает с текущей ревизией, действие отклоняется
type Target struct {
	Token    uuid.UUID
	Revision *int
}

// SubmitDatesRequest модель запроса выбора дат
type SubmitDatesRequest struct {
	Target
	CheckIn  types.CalendarDate
	CheckOut types.CalendarDate
	Guests   int
}

// SubmitDatesResponse состояние сценария и номера, свободные на выбранные даты
type SubmitDatesResponse struct {
	Flow  flow.Context
	Rooms []search_available_rooms.OfferedRoom
}

// SelectRoomRequest модель запроса выбора номера
type SelectRoomRequest struct {
	Target
	RoomID uuid.UUID
}

// SubmitGuestRequest модель запроса данных гостя
type SubmitGuestRequest struct {
	Target
	Guest   domain.Guest
	Payment domain.Payment
	Notes   *string
}

// ConfirmResponse результат подтверждения
// AlreadySubmitted - сценарий был подтвержден раньше, новое бронирование не создавалось
type ConfirmResponse struct {
	Flow             flow.Context
	Booking          *domain.Booking
	BookingID        int64
	NotificationSent bool
	AlreadySubmitted bool
}
