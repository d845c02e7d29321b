package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-HotelBookingService/internal/integrations/mailrelay"
)

const notificationKindConfirmation = "booking_confirmation"

// UseCase use case для создания бронирования
// Используется стойкой персонала и онлайн-сценарием гостя
type UseCase struct {
	roomRepo     RoomRepository
	bookingRepo  BookingRepository
	engine       *availability.Engine
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	storeTimeout time.Duration
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// notifier может быть nil, если отправка писем выключена
func NewUseCase(
	roomRepo RoomRepository,
	bookingRepo BookingRepository,
	engine *availability.Engine,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	storeTimeout time.Duration,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		engine:       engine,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Весь диапазон перепроверяется в сериализуемой транзакции с блокировкой строки номера,
// поэтому два параллельных бронирования пересекающихся дат не могут пройти оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%s, check_in=%s, check_out=%s, source=%s",
		req.RoomID, req.CheckIn, req.CheckOut, req.Source)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Ограничиваем время работы с хранилищем
	storeCtx, cancel := context.WithTimeout(ctx, uc.storeTimeout)
	defer cancel()

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(storeCtx, func(txCtx context.Context) error {
		// 3.1. Получаем номер с блокировкой строки (FOR UPDATE)
		room, err := uc.roomRepo.GetByID(txCtx, req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateBooking: room id=%s not found", req.RoomID)
				return ErrRoomNotFound
			}
			uc.logger.Error("CreateBooking: failed to get room id=%s: %v", req.RoomID, err)
			return fmt.Errorf("%w: failed to get room: %w", ErrStoreUnavailable, err)
		}

		// 3.2. Проверяем статус и вместимость
		if err := validateRoom(room, req.Guest.Headcount()); err != nil {
			uc.logger.Warn("CreateBooking: room id=%s rejected: %v", room.ID, err)
			return err
		}

		// 3.3. Получаем полный список бронирований номера
		bookings, err := uc.bookingRepo.ListByRoom(txCtx, room.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings of room id=%s: %v", room.ID, err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrStoreUnavailable, err)
		}

		// 3.4. Перепроверяем весь диапазон и считаем стоимость
		verdict, err := uc.engine.Check(req.CheckIn, req.CheckOut, room.RatePerDay, domain.Intervals(bookings))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to quote room id=%s: %v", room.ID, err)
			return fmt.Errorf("%w: quote: %v", ErrInvalidInput, err)
		}
		if !verdict.Bookable {
			uc.logger.Warn("CreateBooking: room id=%s is booked on %s", room.ID, verdict.ConflictDate)
			if verdict.ConflictDate != nil {
				return fmt.Errorf("%w: %s is already booked", ErrRoomNotAvailable, verdict.ConflictDate)
			}
			return ErrRoomNotAvailable
		}

		if req.Payment.AmountPaid > verdict.Quote.TotalCost {
			return fmt.Errorf("%w: amount paid %s exceeds total cost %s",
				ErrInvalidInput, req.Payment.AmountPaid, verdict.Quote.TotalCost)
		}

		// 3.5. Создаем бронирование с денормализацией данных номера
		booking := &domain.Booking{
			RoomID:     room.ID,
			RoomName:   room.Name,
			CheckIn:    req.CheckIn,
			CheckOut:   req.CheckOut,
			Nights:     verdict.Quote.Nights,
			RatePerDay: room.RatePerDay,
			TotalCost:  verdict.Quote.TotalCost,
			Source:     req.Source,
			Guest:      req.Guest,
			Payment:    req.Payment,
			Notes:      req.Notes,
			CreatedBy:  req.CreatedBy,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrStoreUnavailable, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrRoomNotAvailable) {
			uc.metrics.IncBookingConflict(string(req.Source))
		}
		return nil, uc.classify(err)
	}

	uc.metrics.IncBookingCreated(string(result.Source))
	uc.logger.Info("CreateBooking: successfully created booking id=%d, nights=%d, total=%s",
		result.ID, result.Nights, result.TotalCost)

	// 4. Отправляем подтверждение: ошибка отправки не отменяет бронирование
	return &Response{
		Booking:          result,
		NotificationSent: uc.notify(ctx, result),
	}, nil
}

// classify приводит ошибки транзакции к ошибкам use case
// Все, что не является бизнес-отказом, считается недоступностью хранилища
func (uc *UseCase) classify(err error) error {
	businessErrors := []error{
		ErrInvalidInput,
		ErrRoomNotFound,
		ErrRoomNotBookable,
		ErrCapacityExceeded,
		ErrRoomNotAvailable,
		ErrStoreUnavailable,
	}
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return err
		}
	}

	uc.logger.Error("CreateBooking: transaction failed: %v", err)
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}

// notify отправляет письмо с подтверждением
// Повторных попыток нет, сбой только логируется и учитывается в метриках
func (uc *UseCase) notify(ctx context.Context, booking *domain.Booking) bool {
	if uc.notifier == nil {
		return false
	}

	payload := mailrelay.BookingConfirmation{
		Email:        booking.Guest.Email,
		FirstName:    booking.Guest.FirstName,
		LastName:     booking.Guest.LastName,
		SelectedRoom: booking.RoomName,
		CheckInDate:  booking.CheckIn.String(),
		CheckOutDate: booking.CheckOut.String(),
		Nights:       booking.Nights,
		TotalCost:    booking.TotalCost.String(),
		BookingID:    booking.ID,
	}

	if err := uc.notifier.SendBookingConfirmation(ctx, payload); err != nil {
		uc.metrics.IncNotificationFailure(notificationKindConfirmation)
		uc.logger.Warn("CreateBooking: confirmation for booking id=%d not sent: %v", booking.ID, err)
		return false
	}

	return true
}
