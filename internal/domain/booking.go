package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

// BookingSource источник бронирования
type BookingSource string

const (
	SourceStaff  BookingSource = "staff"  // создано персоналом на стойке
	SourceOnline BookingSource = "online" // создано гостем через сайт
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
)

// Guest данные гостя
type Guest struct {
	FirstName string `validate:"required,max=100"`
	LastName  string `validate:"required,max=100"`
	Email     string `validate:"required,email,max=255"`
	Phone     string `validate:"omitempty,max=32"`
	Adults    int    `validate:"min=1,max=20"`
	Children  int    `validate:"min=0,max=20"`
}

// Headcount возвращает общее количество гостей
func (g Guest) Headcount() int {
	return g.Adults + g.Children
}

// FullName возвращает имя и фамилию
func (g Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}

// Payment данные оплаты
type Payment struct {
	Method     PaymentMethod `validate:"required,oneof=cash card online"`
	AmountPaid types.Money   `validate:"min=0"`
	Reference  *string       `validate:"omitempty,max=128"`
}

// Booking бронирование номера
type Booking struct {
	ID       int64
	RoomID   uuid.UUID
	RoomName string // денормализовано для истории, номер ищется по RoomID

	CheckIn    types.CalendarDate
	CheckOut   types.CalendarDate
	Nights     int
	RatePerDay types.Money
	TotalCost  types.Money

	Source  BookingSource
	Guest   Guest
	Payment Payment
	Notes   *string

	CreatedBy *int64 // ID сотрудника, nil для онлайн-бронирований

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает интервал занятости номера
func (b *Booking) Interval() availability.Interval {
	return availability.Interval{
		RoomID:   b.RoomID,
		CheckIn:  b.CheckIn,
		CheckOut: b.CheckOut,
	}
}

// IsOnline возвращает true для онлайн-бронирований
func (b *Booking) IsOnline() bool {
	return b.Source == SourceOnline
}

// Balance возвращает остаток к оплате
func (b *Booking) Balance() types.Money {
	return b.TotalCost - b.Payment.AmountPaid
}

// Intervals собирает интервалы занятости из списка бронирований
func Intervals(bookings []*Booking) []availability.Interval {
	intervals := make([]availability.Interval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, b.Interval())
	}
	return intervals
}

// BookingHistoryRecord бронирование после выезда гостя
type BookingHistoryRecord struct {
	ID           int64
	Booking      Booking
	CheckedOutAt time.Time
	CheckedOutBy *int64
}

// DeclinedBooking онлайн-бронирование, отклоненное персоналом
type DeclinedBooking struct {
	ID         int64
	Booking    Booking
	Reason     string
	DeclinedAt time.Time
	DeclinedBy *int64
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	RoomID *uuid.UUID          // Фильтр по номеру (опционально)
	From   *types.CalendarDate // Бронирования, пересекающиеся с периодом [From, To] (опционально)
	To     *types.CalendarDate
	Source *BookingSource // Фильтр по источнику (опционально)
	Email  *string        // Поиск по email гостя (опционально)
	Limit  int            // 0 = без ограничения
	Offset int
}
