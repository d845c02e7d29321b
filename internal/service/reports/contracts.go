package reports

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
)

// ReportRepository интерфейс репозитория обращений
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (*domain.Report, error)
	GetByID(ctx context.Context, kind domain.ReportKind, id int64) (*domain.Report, error)
	List(ctx context.Context, filter domain.ReportsFilter) ([]*domain.Report, error)
	Resolve(ctx context.Context, kind domain.ReportKind, id int64, resolvedBy *int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
