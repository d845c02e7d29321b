package search_rooms

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
	searchRooms "github.com/m04kA/SMC-HotelBookingService/internal/usecase/search_available_rooms"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// SearchResponse HTTP response model
type SearchResponse struct {
	CheckIn  types.CalendarDate  `json:"checkIn"`
	CheckOut types.CalendarDate  `json:"checkOut"`
	Nights   int                 `json:"nights"`
	Rooms    []OfferedRoomResult `json:"rooms"`
}

// OfferedRoomResult свободный номер с итоговой стоимостью
type OfferedRoomResult struct {
	Room      models.RoomResponse `json:"room"`
	TotalCost string              `json:"totalCost"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(checkInStr, checkOutStr, guestsStr string) (*searchRooms.Request, error) {
	checkIn, err := types.ParseCalendarDate(checkInStr)
	if err != nil {
		return nil, fmt.Errorf("checkIn: %w", err)
	}
	checkOut, err := types.ParseCalendarDate(checkOutStr)
	if err != nil {
		return nil, fmt.Errorf("checkOut: %w", err)
	}

	req := &searchRooms.Request{CheckIn: checkIn, CheckOut: checkOut}
	if guestsStr != "" {
		if req.Guests, err = strconv.Atoi(guestsStr); err != nil {
			return nil, fmt.Errorf("guests: %w", err)
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *searchRooms.Response) *SearchResponse {
	return &SearchResponse{
		CheckIn:  resp.CheckIn,
		CheckOut: resp.CheckOut,
		Nights:   resp.Nights,
		Rooms:    FromOfferedRooms(resp.Rooms),
	}
}

// FromOfferedRooms конвертирует найденные номера, используется и в онлайн-сценарии
func FromOfferedRooms(offered []searchRooms.OfferedRoom) []OfferedRoomResult {
	result := make([]OfferedRoomResult, 0, len(offered))
	for _, o := range offered {
		result = append(result, OfferedRoomResult{
			Room:      *models.FromDomainRoom(o.Room),
			TotalCost: o.Quote.TotalCost.String(),
		})
	}
	return result
}
