package report

import "errors"

var (
	// ErrReportNotFound возвращается, когда обращение не найдено
	ErrReportNotFound = errors.New("report.repository: report not found")

	// ErrUnknownKind возвращается для неизвестного типа обращения
	ErrUnknownKind = errors.New("report.repository: unknown report kind")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("report.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("report.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("report.repository: failed to scan row")
)
