package booking_flow

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking_flow: invalid input data")

	// ErrInvalidRange возвращается, когда дата выезда не позже даты заезда
	ErrInvalidRange = errors.New("booking_flow: check-out must be after check-in")

	// ErrFlowNotFound возвращается, когда сценарий не найден или истек
	ErrFlowNotFound = errors.New("booking_flow: flow not found")

	// ErrWrongStage возвращается при действии, недопустимом на текущем этапе
	ErrWrongStage = errors.New("booking_flow: action is not allowed at current stage")

	// ErrStaleFlow возвращается, когда клиент работает с устаревшим состоянием сценария
	ErrStaleFlow = errors.New("booking_flow: flow has changed, reload it")

	// ErrSubmitInProgress возвращается при повторном подтверждении, пока первое не завершилось
	ErrSubmitInProgress = errors.New("booking_flow: submit already in progress")

	// ErrRoomNotFound возвращается, когда номер не найден
	ErrRoomNotFound = errors.New("booking_flow: room not found")

	// ErrRoomNotAvailable возвращается, когда номер занят на выбранные даты или закрыт
	ErrRoomNotAvailable = errors.New("booking_flow: room is not available for selected dates")

	// ErrStoreUnavailable возвращается при недоступности хранилища, операцию можно повторить
	ErrStoreUnavailable = errors.New("booking_flow: reservation store unavailable")
)
