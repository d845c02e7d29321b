package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда (0 ночей)
	ErrInvalidRange = errors.New("create_booking: check-out must be after check-in")

	// ErrStayTooLong возвращается, когда проживание длиннее допустимого
	ErrStayTooLong = errors.New("create_booking: stay is too long")

	// ErrDateInPast возвращается, когда дата заезда в прошлом
	ErrDateInPast = errors.New("create_booking: check-in date is in the past")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrRoomNotBookable возвращается, когда статус номера не допускает бронирование
	ErrRoomNotBookable = errors.New("create_booking: room is not open for booking")

	// ErrCapacityExceeded возвращается, когда гостей больше, чем вмещает номер
	ErrCapacityExceeded = errors.New("create_booking: room capacity exceeded")

	// ErrRoomNotAvailable возвращается, когда диапазон пересекается с занятыми датами
	ErrRoomNotAvailable = errors.New("create_booking: room is not available for selected dates")

	// ErrStoreUnavailable возвращается при недоступности хранилища, операцию можно повторить
	ErrStoreUnavailable = errors.New("create_booking: reservation store unavailable")
)
