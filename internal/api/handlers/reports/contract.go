package reports

import (
	"context"

	"github.com/m04kA/SMC-HotelBookingService/internal/service/reports/models"
)

type ReportService interface {
	Create(ctx context.Context, req *models.CreateReportRequest) (*models.ReportResponse, error)
	List(ctx context.Context, req *models.ListReportsRequest) (*models.ReportListResponse, error)
	Resolve(ctx context.Context, req *models.ResolveReportRequest) (*models.ReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
