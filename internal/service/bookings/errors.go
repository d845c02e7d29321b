package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	// Пустой список при сбое хранилища не возвращается
	ErrStoreUnavailable = errors.New("bookings: reservation store unavailable")
)
