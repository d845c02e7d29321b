package create_booking

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.RoomID == uuid.Nil {
		return fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}

	if req.Source != domain.SourceStaff && req.Source != domain.SourceOnline {
		return fmt.Errorf("%w: unknown booking source %q", ErrInvalidInput, req.Source)
	}

	// 0 ночей - "форма не заполнена", бронирование невозможно
	nights := availability.NightsBetween(req.CheckIn, req.CheckOut)
	if nights == 0 {
		return ErrInvalidRange
	}
	if nights > domain.MaxStayNights {
		return fmt.Errorf("%w: %d nights, max %d", ErrStayTooLong, nights, domain.MaxStayNights)
	}

	if req.CheckIn.Before(types.DateOf(now)) {
		return fmt.Errorf("%w: %s", ErrDateInPast, req.CheckIn)
	}

	if err := validate.Struct(req.Guest); err != nil {
		return fmt.Errorf("%w: guest: %v", ErrInvalidInput, err)
	}

	if err := validate.Struct(req.Payment); err != nil {
		return fmt.Errorf("%w: payment: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateRoom проверяет, что номер открыт для бронирования и вмещает гостей
func validateRoom(room *domain.Room, guests int) error {
	if !room.IsBookable() {
		return fmt.Errorf("%w: status %q", ErrRoomNotBookable, room.Status)
	}
	if !room.Fits(guests) {
		return fmt.Errorf("%w: %d guests, capacity %d", ErrCapacityExceeded, guests, room.Capacity)
	}
	return nil
}
