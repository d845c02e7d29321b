package checkout_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("checkout_booking: booking not found")

	// ErrStoreUnavailable возвращается при недоступности хранилища, операцию можно повторить
	ErrStoreUnavailable = errors.New("checkout_booking: reservation store unavailable")
)
