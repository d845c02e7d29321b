package decline_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/mailrelay"
)

const notificationKindDeclined = "booking_declined"

// UseCase use case отклонения онлайн-бронирования персоналом
type UseCase struct {
	bookingRepo  BookingRepository
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// notifier может быть nil, если отправка писем выключена
func NewUseCase(
	bookingRepo BookingRepository,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит онлайн-бронирование в declined_bookings и освобождает даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeclineBooking: booking=%d", req.BookingID)

	// 1. Валидация входных данных
	reason := strings.TrimSpace(req.Reason)
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxDeclineReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxDeclineReasonLength)
	}

	var result *domain.DeclinedBooking

	// 2. Переносим бронирование в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrStoreUnavailable, err)
		}

		if !booking.IsOnline() {
			return ErrNotOnlineBooking
		}

		declined, err := uc.bookingRepo.CreateDeclined(txCtx, &domain.DeclinedBooking{
			Booking:    *booking,
			Reason:     reason,
			DeclinedAt: uc.timeProvider.Now(),
			DeclinedBy: req.StaffID,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to save declined booking: %v", ErrStoreUnavailable, err)
		}

		if err := uc.bookingRepo.Delete(txCtx, booking.ID); err != nil {
			return fmt.Errorf("%w: failed to delete booking: %v", ErrStoreUnavailable, err)
		}

		result = declined
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound), errors.Is(err, ErrNotOnlineBooking):
			uc.logger.Warn("DeclineBooking: booking id=%d rejected: %v", req.BookingID, err)
			return nil, err
		case errors.Is(err, ErrStoreUnavailable):
			uc.logger.Error("DeclineBooking: %v", err)
			return nil, err
		default:
			uc.logger.Error("DeclineBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	uc.logger.Info("DeclineBooking: booking id=%d declined", req.BookingID)

	// 3. Сообщаем гостю, ошибка отправки не откатывает отклонение
	return &Response{
		Declined:         result,
		NotificationSent: uc.notify(ctx, result),
	}, nil
}

func (uc *UseCase) notify(ctx context.Context, declined *domain.DeclinedBooking) bool {
	if uc.notifier == nil {
		return false
	}

	b := declined.Booking
	email := mailrelay.Email{
		Email:   b.Guest.Email,
		Name:    b.Guest.FullName(),
		Subject: "Your booking has been declined",
		Message: fmt.Sprintf("Your booking of %s from %s to %s has been declined.\nReason: %s",
			b.RoomName, b.CheckIn, b.CheckOut, declined.Reason),
	}

	if err := uc.notifier.SendEmail(ctx, email); err != nil {
		uc.metrics.IncNotificationFailure(notificationKindDeclined)
		uc.logger.Warn("DeclineBooking: notice for booking id=%d not sent: %v", b.ID, err)
		return false
	}

	return true
}
