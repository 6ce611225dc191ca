package service

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
	tableServices = "services"

	pqForeignKeyViolation = "23503"
)

var serviceColumns = []string{
	"id",
	"name",
	"description",
	"duration_minutes",
	"price",
	"category",
	"available",
	"image_url",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет услугу. Если ID пуст, генерируется UUID.
func (r *Repository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}

	query, args, err := psqlbuilder.Insert(tableServices).
		Columns(
			"id",
			"name",
			"description",
			"duration_minutes",
			"price",
			"category",
			"available",
			"image_url",
		).
		Values(
			svc.ID,
			svc.Name,
			svc.Description,
			svc.DurationMinutes,
			svc.Price,
			svc.Category,
			svc.Available,
			svc.ImageURL,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&svc.CreatedAt, &svc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return svc, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrServiceNotFound
	}

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From(tableServices).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	svc, err := scanService(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return svc, nil
}

// List возвращает услуги каталога, отсортированные по категории и названию
func (r *Repository) List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error) {
	selectBuilder := psqlbuilder.Select(serviceColumns...).From(tableServices)

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}
	if filter.Available != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"available": *filter.Available})
	}

	query, args, err := selectBuilder.OrderBy("category ASC", "name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// Update перезаписывает изменяемые поля услуги
func (r *Repository) Update(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	if _, err := uuid.Parse(svc.ID); err != nil {
		return nil, ErrServiceNotFound
	}

	query, args, err := psqlbuilder.Update(tableServices).
		Set("name", svc.Name).
		Set("description", svc.Description).
		Set("duration_minutes", svc.DurationMinutes).
		Set("price", svc.Price).
		Set("category", svc.Category).
		Set("available", svc.Available).
		Set("image_url", svc.ImageURL).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": svc.ID}).
		Suffix("RETURNING " + strings.Join(serviceColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanService(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет услугу. Если на неё ссылаются бронирования, возвращает ErrServiceInUse.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrServiceNotFound
	}

	query, args, err := psqlbuilder.Delete(tableServices).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return ErrServiceInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var svc domain.Service
	err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.DurationMinutes,
		&svc.Price,
		&svc.Category,
		&svc.Available,
		&svc.ImageURL,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}
