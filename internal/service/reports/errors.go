package reports

import "errors"

var (
	// ErrReportNotFound возвращается, когда обращение не найдено
	ErrReportNotFound = errors.New("reports: report not found")

	// ErrAlreadyResolved возвращается при повторном закрытии обращения
	ErrAlreadyResolved = errors.New("reports: report already resolved")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reports: invalid input data")

	// ErrStoreUnavailable возвращается при недоступности хранилища
	ErrStoreUnavailable = errors.New("reports: reservation store unavailable")
)
