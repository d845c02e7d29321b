package list_bookings

import (
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(q url.Values, limit, offset int) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Limit:  limit,
		Offset: offset,
	}

	if s := q.Get("roomId"); s != "" {
		roomID, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("roomId: %w", err)
		}
		req.RoomID = &roomID
	}

	if s := q.Get("from"); s != "" {
		from, err := types.ParseCalendarDate(s)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		req.From = &from
	}

	if s := q.Get("to"); s != "" {
		to, err := types.ParseCalendarDate(s)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		req.To = &to
	}

	if s := q.Get("source"); s != "" {
		req.Source = &s
	}

	if s := q.Get("email"); s != "" {
		req.Email = &s
	}

	return req, nil
}
