package flow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// Stage этап сценария бронирования
type Stage string

const (
	StageSelectingDates        Stage = "selecting_dates"
	StageSelectingRoom         Stage = "selecting_room"
	StageEnteringGuestInfo     Stage = "entering_guest_info"
	StageReviewingConfirmation Stage = "reviewing_confirmation"
	StageSubmitted             Stage = "submitted"
)

// previous предыдущий этап для перехода "назад"
var previous = map[Stage]Stage{
	StageSelectingRoom:         StageSelectingDates,
	StageEnteringGuestInfo:     StageSelectingRoom,
	StageReviewingConfirmation: StageEnteringGuestInfo,
}

var (
	// ErrWrongStage возвращается при попытке выполнить действие не на своем этапе
	ErrWrongStage = errors.New("flow: action is not allowed at current stage")

	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidRange = errors.New("flow: check-out must be after check-in")

	// ErrCannotGoBack возвращается при попытке вернуться с первого или финального этапа
	ErrCannotGoBack = errors.New("flow: cannot go back from current stage")

	// ErrQuoteNotReady возвращается при выборе номера без рассчитанной стоимости
	ErrQuoteNotReady = errors.New("flow: stay quote is not ready")
)

// RoomSelection выбранный номер с котировкой
type RoomSelection struct {
	RoomID     uuid.UUID
	RoomName   string
	RatePerDay types.Money
	Quote      availability.StayQuote
}

// Context неизменяемое состояние одного сценария бронирования
// Каждый переход возвращает новое значение с увеличенной ревизией, исходное не меняется
type Context struct {
	id        uuid.UUID
	stage     Stage
	revision  int
	checkIn   types.CalendarDate
	checkOut  types.CalendarDate
	room      *RoomSelection
	guest     *domain.Guest
	payment   *domain.Payment
	notes     *string
	bookingID *int64
	createdAt time.Time
	updatedAt time.Time
}

// New начинает сценарий на этапе выбора дат
func New(id uuid.UUID, now time.Time) Context {
	return Context{
		id:        id,
		stage:     StageSelectingDates,
		createdAt: now,
		updatedAt: now,
	}
}

func (c Context) ID() uuid.UUID                { return c.id }
func (c Context) Stage() Stage                 { return c.stage }
func (c Context) Revision() int                { return c.revision }
func (c Context) CheckIn() types.CalendarDate  { return c.checkIn }
func (c Context) CheckOut() types.CalendarDate { return c.checkOut }
func (c Context) CreatedAt() time.Time         { return c.createdAt }
func (c Context) UpdatedAt() time.Time         { return c.updatedAt }

// Nights возвращает количество ночей выбранного диапазона
func (c Context) Nights() int {
	return availability.NightsBetween(c.checkIn, c.checkOut)
}

// Room возвращает копию выбранного номера
func (c Context) Room() (RoomSelection, bool) {
	if c.room == nil {
		return RoomSelection{}, false
	}
	return *c.room, true
}

// Guest возвращает копию данных гостя
func (c Context) Guest() (domain.Guest, bool) {
	if c.guest == nil {
		return domain.Guest{}, false
	}
	return *c.guest, true
}

// Payment возвращает копию данных оплаты
func (c Context) Payment() (domain.Payment, bool) {
	if c.payment == nil {
		return domain.Payment{}, false
	}
	return *c.payment, true
}

// Notes возвращает пожелания гостя
func (c Context) Notes() *string {
	if c.notes == nil {
		return nil
	}
	n := *c.notes
	return &n
}

// BookingID возвращает ID созданного бронирования (только на этапе Submitted)
func (c Context) BookingID() (int64, bool) {
	if c.bookingID == nil {
		return 0, false
	}
	return *c.bookingID, true
}

// IsSubmitted возвращает true на финальном этапе
func (c Context) IsSubmitted() bool {
	return c.stage == StageSubmitted
}

// SubmitDates фиксирует даты и переходит к выбору номера
// Смена дат сбрасывает ранее выбранный номер: его котировка больше не актуальна
func (c Context) SubmitDates(checkIn, checkOut types.CalendarDate, now time.Time) (Context, error) {
	if c.stage != StageSelectingDates {
		return c, c.wrongStage("submit dates")
	}
	if availability.NightsBetween(checkIn, checkOut) == 0 {
		return c, ErrInvalidRange
	}

	next := c.advance(StageSelectingRoom, now)
	if next.checkIn != checkIn || next.checkOut != checkOut {
		next.room = nil
	}
	next.checkIn = checkIn
	next.checkOut = checkOut
	return next, nil
}

// SelectRoom фиксирует номер и переходит к вводу данных гостя
func (c Context) SelectRoom(selection RoomSelection, now time.Time) (Context, error) {
	if c.stage != StageSelectingRoom {
		return c, c.wrongStage("select room")
	}
	if !selection.Quote.Ready() {
		return c, ErrQuoteNotReady
	}

	next := c.advance(StageEnteringGuestInfo, now)
	next.room = &selection
	return next, nil
}

// SubmitGuest фиксирует данные гостя и оплаты и переходит к подтверждению
func (c Context) SubmitGuest(guest domain.Guest, payment domain.Payment, notes *string, now time.Time) (Context, error) {
	if c.stage != StageEnteringGuestInfo {
		return c, c.wrongStage("submit guest info")
	}

	next := c.advance(StageReviewingConfirmation, now)
	next.guest = &guest
	next.payment = &payment
	if notes != nil {
		n := *notes
		next.notes = &n
	} else {
		next.notes = nil
	}
	return next, nil
}

// Back возвращает сценарий на один этап назад, введенные данные сохраняются
func (c Context) Back(now time.Time) (Context, error) {
	prev, ok := previous[c.stage]
	if !ok {
		return c, fmt.Errorf("%w: %s", ErrCannotGoBack, c.stage)
	}
	return c.advance(prev, now), nil
}

// MarkSubmitted переводит сценарий в финальное состояние после записи бронирования
func (c Context) MarkSubmitted(bookingID int64, now time.Time) (Context, error) {
	if c.stage != StageReviewingConfirmation {
		return c, c.wrongStage("submit")
	}

	next := c.advance(StageSubmitted, now)
	next.bookingID = &bookingID
	return next, nil
}

func (c Context) advance(stage Stage, now time.Time) Context {
	next := c
	next.stage = stage
	next.revision = c.revision + 1
	next.updatedAt = now
	return next
}

func (c Context) wrongStage(action string) error {
	return fmt.Errorf("%w: cannot %s at stage %s", ErrWrongStage, action, c.stage)
}
