package get_room_availability

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
	getRoomAvailability "github.com/m04kA/SMC-HotelBookingService/internal/usecase/get_room_availability"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

var errHalfRange = errors.New("checkIn and checkOut must be passed together")

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Room           *models.RoomResponse `json:"room"`
	CheckoutPolicy string               `json:"checkoutPolicy"`
	BlockedDates   []types.CalendarDate `json:"blockedDates"`
	Candidate      *CandidateResponse   `json:"candidate,omitempty"`
}

// CandidateResponse проверка выбранного диапазона
type CandidateResponse struct {
	CheckIn      types.CalendarDate  `json:"checkIn"`
	CheckOut     types.CalendarDate  `json:"checkOut"`
	Nights       int                 `json:"nights"`
	TotalCost    string              `json:"totalCost"`
	Bookable     bool                `json:"bookable"`
	ConflictDate *types.CalendarDate `json:"conflictDate,omitempty"`
}

// ToUseCaseRequest формирует запрос к use case из параметров пути и query
func ToUseCaseRequest(roomIDStr, checkInStr, checkOutStr string) (*getRoomAvailability.Request, error) {
	roomID, err := uuid.Parse(roomIDStr)
	if err != nil {
		return nil, fmt.Errorf("roomId: %w", err)
	}

	req := &getRoomAvailability.Request{RoomID: roomID}

	if checkInStr == "" && checkOutStr == "" {
		return req, nil
	}
	if checkInStr == "" || checkOutStr == "" {
		return nil, errHalfRange
	}

	checkIn, err := types.ParseCalendarDate(checkInStr)
	if err != nil {
		return nil, fmt.Errorf("checkIn: %w", err)
	}
	checkOut, err := types.ParseCalendarDate(checkOutStr)
	if err != nil {
		return nil, fmt.Errorf("checkOut: %w", err)
	}

	req.CheckIn = &checkIn
	req.CheckOut = &checkOut
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRoomAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		Room:           models.FromDomainRoom(resp.Room),
		CheckoutPolicy: string(resp.Policy),
		BlockedDates:   resp.BlockedDates,
	}
	if result.BlockedDates == nil {
		result.BlockedDates = []types.CalendarDate{}
	}

	if c := resp.Candidate; c != nil {
		result.Candidate = &CandidateResponse{
			CheckIn:      c.CheckIn,
			CheckOut:     c.CheckOut,
			Nights:       c.Quote.Nights,
			TotalCost:    c.Quote.TotalCost.String(),
			Bookable:     c.Bookable,
			ConflictDate: c.ConflictDate,
		}
	}

	return result
}
