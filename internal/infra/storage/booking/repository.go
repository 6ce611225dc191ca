package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const (
	tableBookings = "bookings"

	// activeSlotIndex частичный уникальный индекс из migrations/001_init.sql
	activeSlotIndex = "bookings_active_slot_uniq"

	pqUniqueViolation = "23505"
)

var bookingColumns = []string{
	"id",
	"customer_id",
	"service_id",
	"date",
	"start_time",
	"end_time",
	"status",
	"notes",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование. Если ID пуст, генерируется UUID.
// Нарушение индекса активного слота возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"id",
			"customer_id",
			"service_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"notes",
		).
		Values(
			booking.ID,
			booking.CustomerID,
			booking.ServiceID,
			domain.DateOnly(booking.Date),
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, mapInsertError(err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Find возвращает бронирования по фильтру.
// Для выборки за конкретную дату сортировка по времени начала, иначе сначала новые.
func (r *Repository) Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := applyFilter(psqlbuilder.Select(bookingColumns...).From(tableBookings), filter)

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("date DESC", "start_time DESC")
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(uint64(filter.Offset))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Find - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Find - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Find - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Find - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Count количество бронирований по фильтру без учёта Limit/Offset
func (r *Repository) Count(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From(tableBookings), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountByStatus количество бронирований по статусам в рамках фильтра
func (r *Repository) CountByStatus(ctx context.Context, filter domain.BookingsFilter) ([]domain.StatusCount, error) {
	query, args, err := applyFilter(psqlbuilder.Select("status", "COUNT(*)").From(tableBookings), filter).
		GroupBy("status").
		OrderBy("status ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.StatusCount, 0)
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("%w: CountByStatus - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByStatus - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// Cancel переводит активное бронирование в cancelled.
// Обновление условное по текущему статусу, поэтому параллельная отмена применяется ровно один раз.
func (r *Repository) Cancel(ctx context.Context, id string, at time.Time) (*domain.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBookingNotFound
	}

	query, args, err := psqlbuilder.Update(tableBookings).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Ничего не обновилось: либо бронирования нет, либо оно уже не активно
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrNotCancellable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

func applyFilter(b squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.CustomerID != nil {
		b = b.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.ServiceID != nil {
		b = b.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.Date != nil {
		b = b.Where(squirrel.Eq{"date": domain.DateOnly(*filter.Date)})
	}
	if filter.StartTime != nil {
		b = b.Where(squirrel.Eq{"start_time": filter.StartTime.String()})
	}
	if len(filter.Statuses) > 0 {
		b = b.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}
	return b
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var notes sql.NullString
	var cancelledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ServiceID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&notes,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.DateOnly(booking.Date)
	if notes.Valid {
		booking.Notes = &notes.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}

	return &booking, nil
}

// mapInsertError единственная переклассификация ошибки хранилища: конфликт слота
func mapInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation && pqErr.Constraint == activeSlotIndex {
		return ErrSlotTaken
	}
	return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
}

func statusStrings(statuses []domain.BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
