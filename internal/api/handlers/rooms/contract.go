package rooms

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/rooms/models"
)

type RoomService interface {
	Create(ctx context.Context, req *models.CreateRoomRequest) (*models.RoomResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.RoomResponse, error)
	List(ctx context.Context, req *models.ListRoomsRequest) (*models.RoomListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateRoomRequest) (*models.RoomResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *models.UpdateStatusRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
