package search_available_rooms

import (
	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Request модель запроса поиска свободных номеров
type Request struct {
	CheckIn  types.CalendarDate
	CheckOut types.CalendarDate
	Guests   int // 0 - без ограничения по вместимости
}

// Response модель ответа со списком свободных номеров
type Response struct {
	CheckIn  types.CalendarDate
	CheckOut types.CalendarDate
	Nights   int
	Rooms    []OfferedRoom
}

// OfferedRoom свободный номер с котировкой
type OfferedRoom struct {
	Room  *domain.Room
	Quote availability.StayQuote
}
