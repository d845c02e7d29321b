package get_room_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
)

// UseCase use case для получения занятости номера
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

// Execute возвращает занятые даты номера и, если указан диапазон, вердикт по нему
// Ошибка чтения бронирований возвращается как ErrStoreUnavailable: пустой календарь вместо ошибки
// позволил бы забронировать занятые даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRoomAvailability: room=%s", req.RoomID)

	// 1. Валидация входных данных
	if req.RoomID == uuid.Nil {
		return nil, fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}
	if (req.CheckIn == nil) != (req.CheckOut == nil) {
		return nil, fmt.Errorf("%w: checkIn and checkOut must be given together", ErrInvalidInput)
	}
	if req.CheckIn != nil {
		if nights := availability.NightsBetween(*req.CheckIn, *req.CheckOut); nights > domain.MaxStayNights {
			uc.logger.Warn("GetRoomAvailability: stay of %d nights rejected", nights)
			return nil, fmt.Errorf("%w: stay is longer than %d nights", ErrInvalidInput, domain.MaxStayNights)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	// 2. Получаем номер
	room, err := uc.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetRoomAvailability: room id=%s not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetRoomAvailability: failed to get room id=%s: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrStoreUnavailable, err)
	}

	// 3. Получаем полный список бронирований номера
	bookings, err := uc.bookingRepo.ListByRoom(ctx, room.ID)
	if err != nil {
		uc.logger.Error("GetRoomAvailability: failed to get bookings of room id=%s: %v", room.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrStoreUnavailable, err)
	}

	intervals := domain.Intervals(bookings)

	resp := &Response{
		Room:         room,
		Policy:       uc.engine.Policy(),
		BlockedDates: uc.engine.BlockedDates(intervals).Sorted(),
	}

	// 4. Проверяем диапазон, если он указан
	if req.CheckIn != nil {
		verdict, err := uc.engine.Check(*req.CheckIn, *req.CheckOut, room.RatePerDay, intervals)
		if err != nil {
			uc.logger.Error("GetRoomAvailability: failed to quote room id=%s: %v", room.ID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		resp.Candidate = &Candidate{
			CheckIn:      *req.CheckIn,
			CheckOut:     *req.CheckOut,
			Quote:        verdict.Quote,
			Bookable:     verdict.Bookable && room.IsBookable(),
			ConflictDate: verdict.ConflictDate,
		}
	}

	uc.logger.Info("GetRoomAvailability: room id=%s has %d blocked dates", room.ID, len(resp.BlockedDates))
	return resp, nil
}
