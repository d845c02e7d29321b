package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Request модели

// CreateRoomRequest запрос на создание номера
// Цена передается в копейках
type CreateRoomRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	RatePerDay  int64   `json:"ratePerDay" validate:"min=0"`
	Capacity    int     `json:"capacity" validate:"min=1,max=20"`
	Status      string  `json:"status,omitempty"` // по умолчанию Available
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// UpdateRoomRequest запрос на обновление номера
// Все поля опциональны - обновляются только переданные значения
type UpdateRoomRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	RatePerDay  *int64  `json:"ratePerDay,omitempty" validate:"omitempty,min=0"`
	Capacity    *int    `json:"capacity,omitempty" validate:"omitempty,min=1,max=20"`
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// UpdateStatusRequest запрос на смену статуса номера
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListRoomsRequest фильтр списка номеров
type ListRoomsRequest struct {
	Status      *string
	MinCapacity *int
}

// Response модели

// RoomResponse ответ с данными номера
type RoomResponse struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Description         *string   `json:"description,omitempty"`
	RatePerDay          int64     `json:"ratePerDay"`
	RatePerDayFormatted string    `json:"ratePerDayFormatted"` // "1500.00"
	Capacity            int       `json:"capacity"`
	Status              string    `json:"status"`
	ImageURL            *string   `json:"imageUrl,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// RoomListResponse ответ со списком номеров
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// Методы конвертации

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}

	return &RoomResponse{
		ID:                  r.ID,
		Name:                r.Name,
		Description:         r.Description,
		RatePerDay:          int64(r.RatePerDay),
		RatePerDayFormatted: r.RatePerDay.String(),
		Capacity:            r.Capacity,
		Status:              string(r.Status),
		ImageURL:            r.ImageURL,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

// FromDomainRoomList конвертирует список domain моделей в DTO
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	resp := &RoomListResponse{
		Rooms: make([]RoomResponse, 0, len(rooms)),
	}

	for _, room := range rooms {
		if roomResp := FromDomainRoom(room); roomResp != nil {
			resp.Rooms = append(resp.Rooms, *roomResp)
		}
	}

	return resp
}

// ToDomainRoom конвертирует CreateRoomRequest в domain модель
func (r *CreateRoomRequest) ToDomainRoom(status domain.RoomStatus) *domain.Room {
	return &domain.Room{
		Name:        r.Name,
		Description: r.Description,
		RatePerDay:  types.Money(r.RatePerDay),
		Capacity:    r.Capacity,
		Status:      status,
		ImageURL:    r.ImageURL,
	}
}

// ApplyToRoom применяет обновления к существующему номеру
// Обновляются только непустые (not nil) поля из request
func (r *UpdateRoomRequest) ApplyToRoom(room *domain.Room) {
	if r.Name != nil {
		room.Name = *r.Name
	}
	if r.Description != nil {
		room.Description = r.Description
	}
	if r.RatePerDay != nil {
		room.RatePerDay = types.Money(*r.RatePerDay)
	}
	if r.Capacity != nil {
		room.Capacity = *r.Capacity
	}
	if r.ImageURL != nil {
		room.ImageURL = r.ImageURL
	}
}
