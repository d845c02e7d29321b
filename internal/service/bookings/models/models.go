package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/types"
)

const (
	// DefaultLimit размер страницы по умолчанию
	DefaultLimit = 50
	// MaxLimit максимальный размер страницы
	MaxLimit = 200
)

var (
	// ErrInvalidSource возвращается при некорректном источнике бронирования
	ErrInvalidSource = errors.New("invalid booking source")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("invalid period")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	RoomID *uuid.UUID          // Фильтр по номеру (опционально)
	From   *types.CalendarDate // Начало периода (опционально)
	To     *types.CalendarDate // Конец периода (опционально)
	Source *string             // staff | online (опционально)
	Email  *string             // Поиск по email гостя (опционально)
	Limit  int
	Offset int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		RoomID: r.RoomID,
		From:   r.From,
		To:     r.To,
		Limit:  NormalizeLimit(r.Limit),
		Offset: r.Offset,
	}

	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return filter, ErrInvalidPeriod
	}
	if r.Offset < 0 {
		filter.Offset = 0
	}

	if r.Source != nil {
		source := domain.BookingSource(*r.Source)
		if source != domain.SourceStaff && source != domain.SourceOnline {
			return filter, ErrInvalidSource
		}
		filter.Source = &source
	}

	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		filter.Email = &email
	}

	return filter, nil
}

// PageRequest запрос страницы истории
type PageRequest struct {
	RoomID *uuid.UUID
	Limit  int
	Offset int
}

// NormalizeLimit приводит размер страницы к допустимому диапазону
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// GuestRequest данные гостя во входящих запросах
type GuestRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
}

// ToDomain конвертирует данные гостя в domain модель
func (g GuestRequest) ToDomain() domain.Guest {
	return domain.Guest{
		FirstName: strings.TrimSpace(g.FirstName),
		LastName:  strings.TrimSpace(g.LastName),
		Email:     strings.TrimSpace(g.Email),
		Phone:     strings.TrimSpace(g.Phone),
		Adults:    g.Adults,
		Children:  g.Children,
	}
}

// PaymentRequest данные оплаты во входящих запросах
// Сумма передается в копейках
type PaymentRequest struct {
	Method     string  `json:"method"`
	AmountPaid int64   `json:"amountPaid"`
	Reference  *string `json:"reference,omitempty"`
}

// ToDomain конвертирует данные оплаты в domain модель
func (p PaymentRequest) ToDomain() domain.Payment {
	return domain.Payment{
		Method:     domain.PaymentMethod(p.Method),
		AmountPaid: types.Money(p.AmountPaid),
		Reference:  p.Reference,
	}
}

// Response модели

// GuestResponse данные гостя
type GuestResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Adults    int    `json:"adults"`
	Children  int    `json:"children"`
}

// PaymentResponse данные оплаты
type PaymentResponse struct {
	Method     string  `json:"method"`
	AmountPaid string  `json:"amountPaid"` // "1500.00"
	Balance    string  `json:"balance"`
	Reference  *string `json:"reference,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64              `json:"id"`
	RoomID     uuid.UUID          `json:"roomId"`
	RoomName   string             `json:"roomName"`
	CheckIn    types.CalendarDate `json:"checkIn"`  // "2025-01-10"
	CheckOut   types.CalendarDate `json:"checkOut"` // "2025-01-12"
	Nights     int                `json:"nights"`
	RatePerDay string             `json:"ratePerDay"`
	TotalCost  string             `json:"totalCost"`
	Source     string             `json:"source"`
	Guest      GuestResponse      `json:"guest"`
	Payment    PaymentResponse    `json:"payment"`
	Notes      *string            `json:"notes,omitempty"`
	CreatedBy  *int64             `json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// HistoryRecordResponse бронирование после выезда
type HistoryRecordResponse struct {
	ID           int64           `json:"id"`
	Booking      BookingResponse `json:"booking"`
	CheckedOutAt time.Time       `json:"checkedOutAt"`
	CheckedOutBy *int64          `json:"checkedOutBy,omitempty"`
}

// HistoryListResponse ответ со списком истории
type HistoryListResponse struct {
	Records []HistoryRecordResponse `json:"records"`
}

// DeclinedBookingResponse отклоненное бронирование
type DeclinedBookingResponse struct {
	ID         int64           `json:"id"`
	Booking    BookingResponse `json:"booking"`
	Reason     string          `json:"reason"`
	DeclinedAt time.Time       `json:"declinedAt"`
	DeclinedBy *int64          `json:"declinedBy,omitempty"`
}

// DeclinedListResponse ответ со списком отклоненных бронирований
type DeclinedListResponse struct {
	Declined []DeclinedBookingResponse `json:"declined"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:         b.ID,
		RoomID:     b.RoomID,
		RoomName:   b.RoomName,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Nights:     b.Nights,
		RatePerDay: b.RatePerDay.String(),
		TotalCost:  b.TotalCost.String(),
		Source:     string(b.Source),
		Guest: GuestResponse{
			FirstName: b.Guest.FirstName,
			LastName:  b.Guest.LastName,
			Email:     b.Guest.Email,
			Phone:     b.Guest.Phone,
			Adults:    b.Guest.Adults,
			Children:  b.Guest.Children,
		},
		Payment: PaymentResponse{
			Method:     string(b.Payment.Method),
			AmountPaid: b.Payment.AmountPaid.String(),
			Balance:    b.Balance().String(),
			Reference:  b.Payment.Reference,
		},
		Notes:     b.Notes,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, limit, offset int) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Limit:    limit,
		Offset:   offset,
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainHistory конвертирует записи истории в DTO
func FromDomainHistory(records []*domain.BookingHistoryRecord) *HistoryListResponse {
	resp := &HistoryListResponse{
		Records: make([]HistoryRecordResponse, 0, len(records)),
	}

	for _, r := range records {
		resp.Records = append(resp.Records, *FromDomainHistoryRecord(r))
	}

	return resp
}

// FromDomainHistoryRecord конвертирует одну запись истории в DTO
func FromDomainHistoryRecord(r *domain.BookingHistoryRecord) *HistoryRecordResponse {
	if r == nil {
		return nil
	}

	return &HistoryRecordResponse{
		ID:           r.ID,
		Booking:      *FromDomainBooking(&r.Booking),
		CheckedOutAt: r.CheckedOutAt,
		CheckedOutBy: r.CheckedOutBy,
	}
}

// FromDomainDeclined конвертирует отклоненное бронирование в DTO
func FromDomainDeclined(d *domain.DeclinedBooking) *DeclinedBookingResponse {
	if d == nil {
		return nil
	}

	return &DeclinedBookingResponse{
		ID:         d.ID,
		Booking:    *FromDomainBooking(&d.Booking),
		Reason:     d.Reason,
		DeclinedAt: d.DeclinedAt,
		DeclinedBy: d.DeclinedBy,
	}
}

// FromDomainDeclinedList конвертирует список отклоненных бронирований в DTO
func FromDomainDeclinedList(declined []*domain.DeclinedBooking) *DeclinedListResponse {
	resp := &DeclinedListResponse{
		Declined: make([]DeclinedBookingResponse, 0, len(declined)),
	}

	for _, d := range declined {
		resp.Declined = append(resp.Declined, *FromDomainDeclined(d))
	}

	return resp
}
