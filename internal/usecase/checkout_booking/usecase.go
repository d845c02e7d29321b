package checkout_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
)

// UseCase use case выезда гостя: бронирование переносится в историю
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронирование в booking_history и удаляет его из активных в одной транзакции
// Освободившиеся даты сразу становятся доступны для новых бронирований
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckoutBooking: booking=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	var result *domain.BookingHistoryRecord

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
		}

		// 2. Сохраняем снимок в историю
		record, err := uc.bookingRepo.CreateHistory(txCtx, &domain.BookingHistoryRecord{
			Booking:      *booking,
			CheckedOutAt: uc.timeProvider.Now(),
			CheckedOutBy: req.StaffID,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create history record: %v", ErrStoreUnavailable, err)
		}

		// 3. Удаляем активное бронирование
		// Параллельный выезд мог удалить бронирование между чтением и удалением
		if err := uc.bookingRepo.Delete(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to delete booking: %v", ErrStoreUnavailable, err)
		}

		result = record
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			uc.logger.Warn("CheckoutBooking: booking id=%d not found", req.BookingID)
			return nil, err
		}
		uc.logger.Error("CheckoutBooking: failed to check out booking id=%d: %v", req.BookingID, err)
		if !errors.Is(err, ErrStoreUnavailable) {
			err = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CheckoutBooking: booking id=%d moved to history id=%d", req.BookingID, result.ID)
	return &Response{Record: result}, nil
}
