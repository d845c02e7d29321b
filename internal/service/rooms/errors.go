package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("rooms: room not found")

	// ErrRoomAlreadyExists возвращается, когда номер с таким названием уже есть
	ErrRoomAlreadyExists = errors.New("rooms: room with this name already exists")

	// ErrRoomInUse возвращается при удалении номера с активными бронированиями
	ErrRoomInUse = errors.New("rooms: room has active bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rooms: invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("rooms: reservation store unavailable")
)
