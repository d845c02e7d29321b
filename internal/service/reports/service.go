package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	reportRepo "github.com/m04kA/SMC-HotelBookingService/internal/infra/storage/report"
	"github.com/m04kA/SMC-HotelBookingService/internal/service/reports/models"
)

// Service сервис жалоб гостей и служебных отчетов персонала
type Service struct {
	reportRepo ReportRepository
	validate   *validator.Validate
	logger     Logger
}

// NewService создает новый экземпляр сервиса обращений
func NewService(reportRepo ReportRepository, logger Logger) *Service {
	return &Service{
		reportRepo: reportRepo,
		validate:   validator.New(),
		logger:     logger,
	}
}

// Create сохраняет жалобу гостя или отчет персонала
func (s *Service) Create(ctx context.Context, req *models.CreateReportRequest) (*models.ReportResponse, error) {
	s.logger.Info("Create: creating %s report", req.Kind)

	kind, ok := models.ParseKind(req.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown report kind %q", ErrInvalidInput, req.Kind)
	}

	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.reportRepo.Create(ctx, &domain.Report{
		Kind:          kind,
		Subject:       req.Subject,
		Message:       req.Message,
		RoomID:        req.RoomID,
		BookingID:     req.BookingID,
		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
		CreatedBy:     req.CreatedBy,
		Status:        domain.ReportOpen,
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Create: successfully created %s report id=%d", kind, created.ID)
	return models.FromDomainReport(created), nil
}

// List возвращает обращения указанного типа
func (s *Service) List(ctx context.Context, req *models.ListReportsRequest) (*models.ReportListResponse, error) {
	kind, ok := models.ParseKind(req.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown report kind %q", ErrInvalidInput, req.Kind)
	}

	filter := domain.ReportsFilter{Kind: kind}
	if req.Status != nil {
		status, ok := models.ParseStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown report status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	reports, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("List: fetched %d %s reports", len(reports), kind)
	return models.FromDomainReportList(reports), nil
}

// Resolve закрывает обращение
func (s *Service) Resolve(ctx context.Context, req *models.ResolveReportRequest) (*models.ReportResponse, error) {
	s.logger.Info("Resolve: resolving %s report id=%d", req.Kind, req.ID)

	kind, ok := models.ParseKind(req.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown report kind %q", ErrInvalidInput, req.Kind)
	}

	// 1. Проверяем, что обращение существует и еще открыто
	report, err := s.reportRepo.GetByID(ctx, kind, req.ID)
	if err != nil {
		return nil, s.repoError("Resolve", err)
	}
	if report.IsResolved() {
		s.logger.Warn("Resolve: report id=%d already resolved", req.ID)
		return nil, ErrAlreadyResolved
	}

	// 2. Закрываем
	if err := s.reportRepo.Resolve(ctx, kind, req.ID, req.ResolvedBy); err != nil {
		return nil, s.repoError("Resolve", err)
	}

	resolved, err := s.reportRepo.GetByID(ctx, kind, req.ID)
	if err != nil {
		return nil, s.repoError("Resolve", err)
	}

	s.logger.Info("Resolve: report id=%d resolved", req.ID)
	return models.FromDomainReport(resolved), nil
}

func (s *Service) repoError(op string, err error) error {
	if errors.Is(err, reportRepo.ErrReportNotFound) {
		s.logger.Warn("%s: report not found", op)
		return ErrReportNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrStoreUnavailable, op, err)
}
