package search_available_rooms

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// UseCase use case для поиска свободных номеров на даты
type UseCase struct {
	roomRepo     RoomRepository
	bookingRepo  BookingRepository
	engine       *availability.Engine
	storeTimeout time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	engine *availability.Engine,
	storeTimeout time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		engine:       engine,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// Execute возвращает номера, открытые для бронирования и свободные на весь диапазон [checkIn, checkOut)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchAvailableRooms: check_in=%s, check_out=%s, guests=%d", req.CheckIn, req.CheckOut, req.Guests)

	// 1. Валидация входных данных
	nights := availability.NightsBetween(req.CheckIn, req.CheckOut)
	if nights == 0 {
		return nil, ErrInvalidRange
	}
	if nights > domain.MaxStayNights {
		return nil, fmt.Errorf("%w: stay is longer than %d nights", ErrInvalidInput, domain.MaxStayNights)
	}
	if req.Guests < 0 {
		return nil, fmt.Errorf("%w: guests must be non-negative", ErrInvalidInput)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	// 2. Получаем номера в статусах, доступных для бронирования
	rooms, err := uc.roomRepo.ListByStatuses(ctx, domain.BookableRoomStatuses, req.Guests)
	if err != nil {
		uc.logger.Error("SearchAvailableRooms: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrStoreUnavailable, err)
	}

	// 3. Получаем бронирования, которые могут пересекаться с диапазоном
	// Интервалы, закончившиеся до checkIn или начинающиеся с checkOut, на результат не влияют
	from := req.CheckIn
	to := req.CheckOut.AddDays(-1)
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{From: &from, To: &to})
	if err != nil {
		uc.logger.Error("SearchAvailableRooms: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrStoreUnavailable, err)
	}

	byRoom := make(map[uuid.UUID][]availability.Interval)
	for _, b := range bookings {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b.Interval())
	}

	// 4. Проверяем каждый номер
	offered := make([]OfferedRoom, 0, len(rooms))
	for _, room := range rooms {
		verdict, err := uc.engine.Check(req.CheckIn, req.CheckOut, room.RatePerDay, byRoom[room.ID])
		if err != nil {
			uc.logger.Warn("SearchAvailableRooms: skip room id=%s: %v", room.ID, err)
			continue
		}
		if !verdict.Bookable {
			continue
		}
		offered = append(offered, OfferedRoom{Room: room, Quote: verdict.Quote})
	}

	uc.logger.Info("SearchAvailableRooms: %d of %d rooms available", len(offered), len(rooms))

	return &Response{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Nights:   nights,
		Rooms:    offered,
	}, nil
}
