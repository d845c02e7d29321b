package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// RoomStatus статус номера
type RoomStatus string

const (
	RoomAvailable           RoomStatus = "Available"
	RoomUnavailable         RoomStatus = "Unavailable"
	RoomLimitedAvailability RoomStatus = "Limited Availability"
	RoomOccupied            RoomStatus = "Occupied"
	RoomClosedMaintenance   RoomStatus = "Closed for Maintenance"
)

// Room номер отеля
type Room struct {
	ID          uuid.UUID // стабильный идентификатор, имя может меняться
	Name        string
	Description *string
	RatePerDay  types.Money
	Capacity    int
	Status      RoomStatus
	ImageURL    *string // ссылка на внешний хостинг изображений
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsBookable возвращает true, если номер можно предлагать для бронирования
func (r *Room) IsBookable() bool {
	return r.Status == RoomAvailable || r.Status == RoomLimitedAvailability
}

// Fits проверяет, что номер вмещает указанное количество гостей
func (r *Room) Fits(guests int) bool {
	return guests <= r.Capacity
}

// RoomsFilter фильтр списка номеров
type RoomsFilter struct {
	Status      *RoomStatus
	MinCapacity *int
}

// ParseRoomStatus проверяет и конвертирует строку в RoomStatus
func ParseRoomStatus(s string) (RoomStatus, bool) {
	for _, status := range RoomStatuses {
		if string(status) == s {
			return status, true
		}
	}
	return "", false
}
