package booking_flow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/internal/flow"
	flowStore "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/flow"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/get_room_availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/usecase/search_available_rooms"
)

// UseCase сценарий онлайн-бронирования гостем
// Состояние сценария хранится в FlowStore, каждое действие заменяет его новой ревизией
type UseCase struct {
	store        FlowStore
	search       RoomSearcher
	availability AvailabilityChecker
	creator      BookingCreator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store FlowStore,
	search RoomSearcher,
	availability AvailabilityChecker,
	creator BookingCreator,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		search:       search,
		availability: availability,
		creator:      creator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Start начинает новый сценарий с новым токеном
func (uc *UseCase) Start(ctx context.Context) (flow.Context, error) {
	c := flow.New(uuid.New(), uc.timeProvider.Now())
	if err := uc.store.Create(ctx, c); err != nil {
		uc.logger.Error("BookingFlow.Start: failed to create flow: %v", err)
		return flow.Context{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	uc.logger.Info("BookingFlow.Start: flow %s started", c.ID())
	return c, nil
}

// Get возвращает текущее состояние сценария
func (uc *UseCase) Get(ctx context.Context, token uuid.UUID) (flow.Context, error) {
	c, err := uc.store.Get(ctx, token)
	if err != nil {
		return flow.Context{}, uc.storeError(err)
	}
	return c, nil
}

// Reset отбрасывает сценарий и начинает новый с другим токеном
// Ответы, пришедшие позже для старого токена, уже не найдут сценарий
func (uc *UseCase) Reset(ctx context.Context, token uuid.UUID) (flow.Context, error) {
	if err := uc.store.Delete(ctx, token); err != nil && !errors.Is(err, flowStore.ErrFlowNotFound) {
		return flow.Context{}, uc.storeError(err)
	}

	uc.logger.Info("BookingFlow.Reset: flow %s discarded", token)
	return uc.Start(ctx)
}

// SubmitDates фиксирует даты и возвращает номера, свободные на весь диапазон
// Сценарий переходит к выбору номера только после успешного чтения занятости
func (uc *UseCase) SubmitDates(ctx context.Context, req *SubmitDatesRequest) (*SubmitDatesResponse, error) {
	uc.logger.Info("BookingFlow.SubmitDates: flow=%s, check_in=%s, check_out=%s", req.Token, req.CheckIn, req.CheckOut)

	// 1. Получаем текущее состояние
	current, err := uc.load(ctx, req.Target)
	if err != nil {
		return nil, err
	}

	// 2. Проверяем переход до обращения к хранилищу
	now := uc.timeProvider.Now()
	next, err := current.SubmitDates(req.CheckIn, req.CheckOut, now)
	if err != nil {
		return nil, transitionError(err)
	}
	if err := validateDates(req, now); err != nil {
		return nil, err
	}

	// 3. Ищем свободные номера
	found, err := uc.search.Execute(ctx, &search_available_rooms.Request{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Guests:   req.Guests,
	})
	if err != nil {
		switch {
		case errors.Is(err, search_available_rooms.ErrInvalidRange):
			return nil, ErrInvalidRange
		case errors.Is(err, search_available_rooms.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("BookingFlow.SubmitDates: search failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	// 4. Сохраняем новое состояние
	if err := uc.store.Replace(ctx, next, current.Revision()); err != nil {
		return nil, uc.storeError(err)
	}

	return &SubmitDatesResponse{Flow: next, Rooms: found.Rooms}, nil
}

// SelectRoom перепроверяет диапазон по свежим данным и фиксирует номер
func (uc *UseCase) SelectRoom(ctx context.Context, req *SelectRoomRequest) (flow.Context, error) {
	uc.logger.Info("BookingFlow.SelectRoom: flow=%s, room=%s", req.Token, req.RoomID)

	if req.RoomID == uuid.Nil {
		return flow.Context{}, fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}

	// 1. Получаем текущее состояние
	current, err := uc.load(ctx, req.Target)
	if err != nil {
		return flow.Context{}, err
	}
	if current.Stage() != flow.StageSelectingRoom {
		return flow.Context{}, fmt.Errorf("%w: cannot select room at stage %s", ErrWrongStage, current.Stage())
	}

	// 2. Проверяем диапазон по полному списку бронирований номера
	checkIn, checkOut := current.CheckIn(), current.CheckOut()
	resp, err := uc.availability.Execute(ctx, &get_room_availability.Request{
		RoomID:   req.RoomID,
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, get_room_availability.ErrRoomNotFound):
			return flow.Context{}, ErrRoomNotFound
		case errors.Is(err, get_room_availability.ErrInvalidInput):
			return flow.Context{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("BookingFlow.SelectRoom: availability check failed: %v", err)
			return flow.Context{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	candidate := resp.Candidate
	if candidate == nil || !candidate.Bookable {
		uc.logger.Warn("BookingFlow.SelectRoom: room %s is not available for %s - %s", req.RoomID, checkIn, checkOut)
		if candidate != nil && candidate.ConflictDate != nil {
			return flow.Context{}, fmt.Errorf("%w: %s is already booked", ErrRoomNotAvailable, candidate.ConflictDate)
		}
		return flow.Context{}, ErrRoomNotAvailable
	}

	// 3. Переходим к вводу данных гостя
	next, err := current.SelectRoom(flow.RoomSelection{
		RoomID:     resp.Room.ID,
		RoomName:   resp.Room.Name,
		RatePerDay: resp.Room.RatePerDay,
		Quote:      candidate.Quote,
	}, uc.timeProvider.Now())
	if err != nil {
		return flow.Context{}, transitionError(err)
	}

	if err := uc.store.Replace(ctx, next, current.Revision()); err != nil {
		return flow.Context{}, uc.storeError(err)
	}

	return next, nil
}

// SubmitGuest фиксирует данные гостя и оплаты
func (uc *UseCase) SubmitGuest(ctx context.Context, req *SubmitGuestRequest) (flow.Context, error) {
	uc.logger.Info("BookingFlow.SubmitGuest: flow=%s", req.Token)

	if req.Payment.Method == "" {
		req.Payment.Method = domain.PaymentOnline
	}
	if err := validateGuest(req); err != nil {
		return flow.Context{}, err
	}

	current, err := uc.load(ctx, req.Target)
	if err != nil {
		return flow.Context{}, err
	}

	next, err := current.SubmitGuest(req.Guest, req.Payment, req.Notes, uc.timeProvider.Now())
	if err != nil {
		return flow.Context{}, transitionError(err)
	}

	if err := uc.store.Replace(ctx, next, current.Revision()); err != nil {
		return flow.Context{}, uc.storeError(err)
	}

	return next, nil
}

// Back возвращает сценарий на предыдущий этап
func (uc *UseCase) Back(ctx context.Context, target Target) (flow.Context, error) {
	current, err := uc.load(ctx, target)
	if err != nil {
		return flow.Context{}, err
	}

	next, err := current.Back(uc.timeProvider.Now())
	if err != nil {
		return flow.Context{}, transitionError(err)
	}

	if err := uc.store.Replace(ctx, next, current.Revision()); err != nil {
		return flow.Context{}, uc.storeError(err)
	}

	return next, nil
}

// Confirm создает бронирование по данным сценария
// Повторное подтверждение уже отправленного сценария возвращает то же бронирование без новой записи
func (uc *UseCase) Confirm(ctx context.Context, target Target) (*ConfirmResponse, error) {
	uc.logger.Info("BookingFlow.Confirm: flow=%s", target.Token)

	// 1. Получаем текущее состояние
	current, err := uc.store.Get(ctx, target.Token)
	if err != nil {
		return nil, uc.storeError(err)
	}

	if bookingID, ok := current.BookingID(); ok && current.IsSubmitted() {
		uc.logger.Info("BookingFlow.Confirm: flow %s already submitted as booking id=%d", current.ID(), bookingID)
		return &ConfirmResponse{Flow: current, BookingID: bookingID, AlreadySubmitted: true}, nil
	}

	if target.Revision != nil && *target.Revision != current.Revision() {
		return nil, fmt.Errorf("%w: expected %d, actual %d", ErrStaleFlow, *target.Revision, current.Revision())
	}
	if current.Stage() != flow.StageReviewingConfirmation {
		return nil, fmt.Errorf("%w: cannot submit at stage %s", ErrWrongStage, current.Stage())
	}

	room, _ := current.Room()
	guest, _ := current.Guest()
	payment, _ := current.Payment()

	// 2. Помечаем сценарий как отправляемый
	if err := uc.store.BeginSubmit(ctx, current.ID(), current.Revision()); err != nil {
		return nil, uc.storeError(err)
	}
	defer uc.store.EndSubmit(ctx, current.ID())

	// 3. Записываем бронирование с перепроверкой всего диапазона
	created, err := uc.creator.Execute(ctx, &create_booking.Request{
		RoomID:   room.RoomID,
		CheckIn:  current.CheckIn(),
		CheckOut: current.CheckOut(),
		Source:   domain.SourceOnline,
		Guest:    guest,
		Payment:  payment,
		Notes:    current.Notes(),
	})
	if err != nil {
		uc.logger.Warn("BookingFlow.Confirm: flow %s stays in review: %v", current.ID(), err)
		return nil, creatorError(err)
	}

	// 4. Фиксируем финальное состояние
	next, err := current.MarkSubmitted(created.Booking.ID, uc.timeProvider.Now())
	if err != nil {
		return nil, transitionError(err)
	}
	if err := uc.store.CompleteSubmit(ctx, next, current.Revision()); err != nil {
		// Бронирование уже записано, сценарий мог истечь за время записи
		uc.logger.Error("BookingFlow.Confirm: booking id=%d created but flow %s not updated: %v",
			created.Booking.ID, current.ID(), err)
	}

	uc.logger.Info("BookingFlow.Confirm: flow %s submitted as booking id=%d", current.ID(), created.Booking.ID)
	return &ConfirmResponse{
		Flow:             next,
		Booking:          created.Booking,
		BookingID:        created.Booking.ID,
		NotificationSent: created.NotificationSent,
	}, nil
}

func (uc *UseCase) load(ctx context.Context, target Target) (flow.Context, error) {
	current, err := uc.store.Get(ctx, target.Token)
	if err != nil {
		return flow.Context{}, uc.storeError(err)
	}
	if target.Revision != nil && *target.Revision != current.Revision() {
		return flow.Context{}, fmt.Errorf("%w: expected %d, actual %d", ErrStaleFlow, *target.Revision, current.Revision())
	}
	return current, nil
}

func (uc *UseCase) storeError(err error) error {
	switch {
	case errors.Is(err, flowStore.ErrFlowNotFound):
		return ErrFlowNotFound
	case errors.Is(err, flowStore.ErrStaleRevision):
		return fmt.Errorf("%w: %v", ErrStaleFlow, err)
	case errors.Is(err, flowStore.ErrSubmitInProgress):
		return ErrSubmitInProgress
	default:
		uc.logger.Error("BookingFlow: flow store failed: %v", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

func transitionError(err error) error {
	switch {
	case errors.Is(err, flow.ErrInvalidRange):
		return ErrInvalidRange
	case errors.Is(err, flow.ErrQuoteNotReady):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrWrongStage, err)
	}
}

func creatorError(err error) error {
	switch {
	case errors.Is(err, create_booking.ErrRoomNotAvailable),
		errors.Is(err, create_booking.ErrRoomNotBookable):
		return fmt.Errorf("%w: %v", ErrRoomNotAvailable, err)
	case errors.Is(err, create_booking.ErrRoomNotFound):
		return ErrRoomNotFound
	case errors.Is(err, create_booking.ErrInvalidRange):
		return ErrInvalidRange
	case errors.Is(err, create_booking.ErrStoreUnavailable):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
}
