package get_room_availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Request модель запроса занятости номера
// Диапазон заезда/выезда опционален: без него возвращаются только занятые даты
type Request struct {
	RoomID   uuid.UUID
	CheckIn  *types.CalendarDate
	CheckOut *types.CalendarDate
}

// Response модель ответа с занятостью номера
type Response struct {
	Room         *domain.Room
	Policy       availability.CheckoutPolicy
	BlockedDates []types.CalendarDate // по возрастанию
	Candidate    *Candidate           // заполняется, если в запросе был диапазон
}

// Candidate проверка выбранного диапазона
type Candidate struct {
	CheckIn      types.CalendarDate
	CheckOut     types.CalendarDate
	Quote        availability.StayQuote // {0, 0}, если выезд не позже заезда
	Bookable     bool
	ConflictDate *types.CalendarDate
}
