package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

// tables каждая разновидность обращений хранится в своей таблице
var tables = map[domain.ReportKind]string{
	domain.ReportComplaint: "complaint_reports",
	domain.ReportStaff:     "reports",
}

var reportColumns = []string{
	"id",
	"subject",
	"message",
	"room_id",
	"booking_id",
	"reporter_name",
	"reporter_email",
	"created_by",
	"status",
	"resolved_at",
	"resolved_by",
	"created_at",
	"updated_at",
}

// Repository репозиторий жалоб и служебных отчетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория обращений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет обращение в таблицу его типа
func (r *Repository) Create(ctx context.Context, report *domain.Report) (*domain.Report, error) {
	table, err := tableFor(report.Kind)
	if err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("subject", "message", "room_id", "booking_id", "reporter_name", "reporter_email", "created_by", "status").
		Values(report.Subject, report.Message, report.RoomID, report.BookingID, report.ReporterName, report.ReporterEmail, report.CreatedBy, report.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return report, nil
}

// GetByID получает обращение по типу и ID
func (r *Repository) GetByID(ctx context.Context, kind domain.ReportKind, id int64) (*domain.Report, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reportColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	report := domain.Report{Kind: kind}
	err = scanReport(executor.QueryRowContext(ctx, query, args...), &report)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan report: %w", ErrScanRow, err)
	}

	return &report, nil
}

// List возвращает обращения указанного типа, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.ReportsFilter) ([]*domain.Report, error) {
	table, err := tableFor(filter.Kind)
	if err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reportColumns...).
		From(table).
		OrderBy("created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reports := make([]*domain.Report, 0)
	for rows.Next() {
		report := domain.Report{Kind: filter.Kind}
		if err := scanReport(rows, &report); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		reports = append(reports, &report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return reports, nil
}

// Resolve закрывает обращение
func (r *Repository) Resolve(ctx context.Context, kind domain.ReportKind, id int64, resolvedBy *int64) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.ReportResolved).
		Set("resolved_at", squirrel.Expr("NOW()")).
		Set("resolved_by", resolvedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReportNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner, report *domain.Report) error {
	return row.Scan(
		&report.ID,
		&report.Subject,
		&report.Message,
		&report.RoomID,
		&report.BookingID,
		&report.ReporterName,
		&report.ReporterEmail,
		&report.CreatedBy,
		&report.Status,
		&report.ResolvedAt,
		&report.ResolvedBy,
		&report.CreatedAt,
		&report.UpdatedAt,
	)
}

func tableFor(kind domain.ReportKind) (string, error) {
	table, ok := tables[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return table, nil
}
