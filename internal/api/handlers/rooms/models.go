package rooms

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

// ToListRequest формирует фильтр списка номеров из query параметров
func ToListRequest(q url.Values) (*models.ListRoomsRequest, error) {
	req := &models.ListRoomsRequest{}

	if s := q.Get("status"); s != "" {
		req.Status = &s
	}

	if s := q.Get("minCapacity"); s != "" {
		capacity, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("minCapacity: %w", err)
		}
		req.MinCapacity = &capacity
	}

	return req, nil
}
