package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-HotelBookingService/internal/domain"
	"github.com/m04kA/SMC-HotelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-HotelBookingService/pkg/psqlbuilder"
)

const codeForeignKeyViolation = "23503"

// Repository репозиторий для работы с бронированиями, историей выездов и отклоненными бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Проверка пересечений выполняется в usecase внутри той же транзакции до вызова Create.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(snapshotColumns...).
		Values(snapshotValues(booking)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == codeForeignKeyViolation {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) для последующего переноса в историю
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var booking domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(bookingDest(&booking)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return &booking, nil
}

// ListByRoom возвращает все бронирования номера
// Результат - полный список интервалов, из которого строится множество занятых дат
func (r *Repository) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		OrderBy("check_in ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoom - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoom - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List получает бронирования с фильтрацией
// Поддерживает фильтрацию по:
// - Номеру (RoomID)
// - Периоду (From, To): бронирования, пересекающиеся с периодом
// - Источнику (Source)
// - Email гостя (Email)
//
// Пример: все онлайн-бронирования номера на октябрь
//
//	from, to := types.NewCalendarDate(2025, 10, 1), types.NewCalendarDate(2025, 10, 31)
//	source := domain.SourceOnline
//	filter := domain.BookingsFilter{RoomID: &roomID, From: &from, To: &to, Source: &source}
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns()...).
		From("bookings").
		OrderBy("check_in ASC", "id ASC")

	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	// Интервал пересекается с [From, To], если начинается не позже To и заканчивается не раньше From
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"check_out": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"check_in": *filter.To})
	}
	if filter.Source != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"source": *filter.Source})
	}
	if filter.Email != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"LOWER(guest_email)": *filter.Email})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
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

	return r.scanBookings(rows)
}

// CountByRoom возвращает количество бронирований номера
func (r *Repository) CountByRoom(ctx context.Context, roomID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByRoom - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByRoom - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CreateHistory сохраняет снимок бронирования после выезда гостя
func (r *Repository) CreateHistory(ctx context.Context, record *domain.BookingHistoryRecord) (*domain.BookingHistoryRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append([]string{"booking_id"}, snapshotColumns...)
	columns = append(columns, "created_at", "updated_at", "checked_out_at", "checked_out_by")

	values := append([]interface{}{record.Booking.ID}, snapshotValues(&record.Booking)...)
	values = append(values, record.Booking.CreatedAt, record.Booking.UpdatedAt, record.CheckedOutAt, record.CheckedOutBy)

	query, args, err := psqlbuilder.Insert("booking_history").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateHistory - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&record.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateHistory - execute insert: %w", ErrExecQuery, err)
	}

	return record, nil
}

// ListHistory возвращает историю выездов, новые записи первыми
func (r *Repository) ListHistory(ctx context.Context, roomID *uuid.UUID, limit, offset int) ([]*domain.BookingHistoryRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append([]string{"id", "booking_id"}, snapshotColumns...)
	columns = append(columns, "created_at", "updated_at", "checked_out_at", "checked_out_by")

	selectBuilder := psqlbuilder.Select(columns...).
		From("booking_history").
		OrderBy("checked_out_at DESC")

	if roomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *roomID})
	}
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}
	if offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListHistory - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHistory - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.BookingHistoryRecord, 0)
	for rows.Next() {
		var rec domain.BookingHistoryRecord
		dest := append([]interface{}{&rec.ID, &rec.Booking.ID}, snapshotDest(&rec.Booking)...)
		dest = append(dest, &rec.Booking.CreatedAt, &rec.Booking.UpdatedAt, &rec.CheckedOutAt, &rec.CheckedOutBy)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: ListHistory - scan row: %w", ErrScanRow, err)
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHistory - rows error: %w", ErrScanRow, err)
	}

	return records, nil
}

// CreateDeclined сохраняет снимок отклоненного онлайн-бронирования
func (r *Repository) CreateDeclined(ctx context.Context, declined *domain.DeclinedBooking) (*domain.DeclinedBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append([]string{"booking_id"}, snapshotColumns...)
	columns = append(columns, "created_at", "updated_at", "reason", "declined_at", "declined_by")

	values := append([]interface{}{declined.Booking.ID}, snapshotValues(&declined.Booking)...)
	values = append(values, declined.Booking.CreatedAt, declined.Booking.UpdatedAt, declined.Reason, declined.DeclinedAt, declined.DeclinedBy)

	query, args, err := psqlbuilder.Insert("declined_bookings").
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDeclined - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&declined.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateDeclined - execute insert: %w", ErrExecQuery, err)
	}

	return declined, nil
}

// ListDeclined возвращает отклоненные бронирования, новые первыми
func (r *Repository) ListDeclined(ctx context.Context, limit, offset int) ([]*domain.DeclinedBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := append([]string{"id", "booking_id"}, snapshotColumns...)
	columns = append(columns, "created_at", "updated_at", "reason", "declined_at", "declined_by")

	selectBuilder := psqlbuilder.Select(columns...).
		From("declined_bookings").
		OrderBy("declined_at DESC")

	if limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(limit))
	}
	if offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDeclined - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDeclined - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	declined := make([]*domain.DeclinedBooking, 0)
	for rows.Next() {
		var d domain.DeclinedBooking
		dest := append([]interface{}{&d.ID, &d.Booking.ID}, snapshotDest(&d.Booking)...)
		dest = append(dest, &d.Booking.CreatedAt, &d.Booking.UpdatedAt, &d.Reason, &d.DeclinedAt, &d.DeclinedBy)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: ListDeclined - scan row: %w", ErrScanRow, err)
		}
		declined = append(declined, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDeclined - rows error: %w", ErrScanRow, err)
	}

	return declined, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(row rowScanner, booking *domain.Booking) error {
	return row.Scan(bookingDest(booking)...)
}
