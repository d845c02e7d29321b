package decline_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("decline_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("decline_booking: booking not found")

	// ErrNotOnlineBooking возвращается при попытке отклонить бронирование, созданное персоналом
	ErrNotOnlineBooking = errors.New("decline_booking: only online bookings can be declined")

	// ErrStoreUnavailable возвращается при недоступности хранилища, операцию можно повторить
	ErrStoreUnavailable = errors.New("decline_booking: reservation store unavailable")
)
