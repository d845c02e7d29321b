package availability

import "github.com/m04kA/SMC-HotelBookingService/pkg/types"

// Engine связывает чистые функции расчета доступности с выбранной политикой дня выезда
// Один экземпляр используется всеми сценариями бронирования (персонал, онлайн)
type Engine struct {
	policy CheckoutPolicy
}

// NewEngine создает движок доступности
func NewEngine(policy CheckoutPolicy) *Engine {
	if policy == "" {
		policy = DefaultCheckoutPolicy
	}
	return &Engine{policy: policy}
}

// Policy возвращает политику дня выезда
func (e *Engine) Policy() CheckoutPolicy {
	return e.policy
}

// BlockedDates строит множество занятых дат номера
func (e *Engine) BlockedDates(intervals []Interval) BlockedDates {
	return ExpandToBlockedDates(intervals, e.policy)
}

// Check проверяет диапазон против интервалов номера и считает котировку
func (e *Engine) Check(checkIn, checkOut types.CalendarDate, ratePerDay types.Money, intervals []Interval) (Verdict, error) {
	nights := NightsBetween(checkIn, checkOut)

	quote, err := Quote(nights, ratePerDay)
	if err != nil {
		return Verdict{}, err
	}

	blocked := e.BlockedDates(intervals)
	verdict := Verdict{
		Quote:    quote,
		Bookable: IsRangeBookable(checkIn, checkOut, blocked),
	}

	if conflict, ok := FirstConflict(checkIn, checkOut, blocked); ok {
		verdict.ConflictDate = &conflict
	}

	return verdict, nil
}

// Verdict результат проверки диапазона
type Verdict struct {
	Quote        StayQuote
	Bookable     bool
	ConflictDate *types.CalendarDate // первая занятая дата, если есть
}
