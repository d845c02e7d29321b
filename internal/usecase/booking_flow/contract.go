package booking_flow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/flow"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/get_room_availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/search_available_rooms"
)

// FlowStore интерфейс хранилища сценариев
type FlowStore interface {
	Create(ctx context.Context, c flow.Context) error
	Get(ctx context.Context, id uuid.UUID) (flow.Context, error)
	Replace(ctx context.Context, next flow.Context, expectedRevision int) error
	BeginSubmit(ctx context.Context, id uuid.UUID, expectedRevision int) error
	CompleteSubmit(ctx context.Context, next flow.Context, expectedRevision int) error
	EndSubmit(ctx context.Context, id uuid.UUID)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoomSearcher поиск свободных номеров на даты
type RoomSearcher interface {
	Execute(ctx context.Context, req *search_available_rooms.Request) (*search_available_rooms.Response, error)
}

// AvailabilityChecker проверка диапазона для конкретного номера
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *get_room_availability.Request) (*get_room_availability.Response, error)
}

// BookingCreator запись бронирования
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
