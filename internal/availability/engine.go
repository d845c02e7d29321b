package availability

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// CheckoutPolicy определяет, занят ли день выезда
type CheckoutPolicy string

const (
	// CheckoutInclusive день выезда считается занятым и не может быть днем заезда нового гостя
	CheckoutInclusive CheckoutPolicy = "inclusive"

	// CheckoutExclusive день выезда свободен (заезд в день выезда предыдущего гостя)
	CheckoutExclusive CheckoutPolicy = "exclusive"
)

// DefaultCheckoutPolicy политика по умолчанию
// TODO: согласовать с отелем переход на CheckoutExclusive (заезд в день выезда)
const DefaultCheckoutPolicy = CheckoutInclusive

var (
	// ErrNegativeRate возвращается при отрицательной цене за сутки
	ErrNegativeRate = errors.New("availability: rate per day must be non-negative")

	// ErrUnknownPolicy возвращается при неизвестной политике дня выезда
	ErrUnknownPolicy = errors.New("availability: unknown checkout policy")
)

// ParseCheckoutPolicy парсит политику из конфигурации
// Пустая строка - политика по умолчанию
func ParseCheckoutPolicy(s string) (CheckoutPolicy, error) {
	switch CheckoutPolicy(s) {
	case "":
		return DefaultCheckoutPolicy, nil
	case CheckoutInclusive, CheckoutExclusive:
		return CheckoutPolicy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Interval занятость номера одним бронированием
type Interval struct {
	RoomID   uuid.UUID
	CheckIn  types.CalendarDate
	CheckOut types.CalendarDate
}

// StayQuote количество ночей и итоговая стоимость проживания
type StayQuote struct {
	Nights    int
	TotalCost types.Money
}

// Ready возвращает true, если форма заполнена (есть хотя бы одна ночь)
// Нулевая стоимость при Nights > 0 - это бесплатное проживание, а не незаполненная форма
func (q StayQuote) Ready() bool {
	return q.Nights > 0
}

// BlockedDates множество занятых календарных дат номера
type BlockedDates map[types.CalendarDate]struct{}

// Contains проверяет, занята ли дата
func (b BlockedDates) Contains(date types.CalendarDate) bool {
	_, ok := b[date]
	return ok
}

// Len возвращает количество занятых дат
func (b BlockedDates) Len() int {
	return len(b)
}

// Sorted возвращает занятые даты по возрастанию
func (b BlockedDates) Sorted() []types.CalendarDate {
	dates := make([]types.CalendarDate, 0, len(b))
	for d := range b {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
	return dates
}

// NightsBetween возвращает количество ночей между заездом и выездом
// Для checkOut <= checkIn возвращает 0: это "форма не заполнена", а не ошибка
func NightsBetween(checkIn, checkOut types.CalendarDate) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	return checkIn.DaysUntil(checkOut)
}

// Quote считает стоимость проживания: nights * ratePerDay
// При nights <= 0 возвращает нулевую котировку
func Quote(nights int, ratePerDay types.Money) (StayQuote, error) {
	if ratePerDay.IsNegative() {
		return StayQuote{}, ErrNegativeRate
	}
	if nights <= 0 {
		return StayQuote{}, nil
	}

	total, err := ratePerDay.MulInt(nights)
	if err != nil {
		return StayQuote{}, err
	}

	return StayQuote{Nights: nights, TotalCost: total}, nil
}

// ExpandToBlockedDates разворачивает интервалы бронирований в множество занятых дат
// Множество всегда строится заново по полному списку интервалов
func ExpandToBlockedDates(intervals []Interval, policy CheckoutPolicy) BlockedDates {
	blocked := make(BlockedDates)

	for _, interval := range intervals {
		last := interval.CheckOut
		if policy == CheckoutExclusive {
			last = last.AddDays(-1)
		}

		for date := interval.CheckIn; !date.After(last); date = date.AddDays(1) {
			blocked[date] = struct{}{}
		}
	}

	return blocked
}

// IsDateBlocked проверяет занятость по календарному дню
// Время суток значения не учитывается
func IsDateBlocked(t time.Time, blocked BlockedDates) bool {
	return blocked.Contains(types.DateOf(t))
}

// IsRangeBookable проверяет, что диапазон [checkIn, checkOut) можно забронировать
// Ночь дня выезда нового гостя в проверку не входит
func IsRangeBookable(checkIn, checkOut types.CalendarDate, blocked BlockedDates) bool {
	if NightsBetween(checkIn, checkOut) == 0 {
		return false
	}

	for date := checkIn; date.Before(checkOut); date = date.AddDays(1) {
		if blocked.Contains(date) {
			return false
		}
	}

	return true
}

// FirstConflict возвращает первую занятую дату в диапазоне [checkIn, checkOut)
func FirstConflict(checkIn, checkOut types.CalendarDate, blocked BlockedDates) (types.CalendarDate, bool) {
	for date := checkIn; date.Before(checkOut); date = date.AddDays(1) {
		if blocked.Contains(date) {
			return date, true
		}
	}
	return types.CalendarDate{}, false
}
