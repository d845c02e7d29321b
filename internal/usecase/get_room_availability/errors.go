package get_room_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_room_availability: invalid input data")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("get_room_availability: room not found")

	// ErrStoreUnavailable возвращается при недоступности хранилища, операцию можно повторить
	ErrStoreUnavailable = errors.New("get_room_availability: reservation store unavailable")
)
