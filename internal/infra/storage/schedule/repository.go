// Package schedule stores the tenant's working hours and special-date
// overrides. Read-only from the engine's perspective.
package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
	"github.com/agendahub/scheduling-service/pkg/psqlbuilder"
)

var workingHoursColumns = []string{
	"id",
	"tenant_id",
	"weekday",
	"open_time",
	"close_time",
	"break_start",
	"break_end",
	"active",
	"created_at",
	"updated_at",
}

var specialDateColumns = []string{
	"id",
	"tenant_id",
	"date",
	"type",
	"description",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository reads the tenant's calendar configuration.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a schedule repository over db.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkingHours fetches the active schedule row for (tenant, weekday).
func (r *Repository) GetWorkingHours(ctx context.Context, tenantID int64, weekday domain.Weekday) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("working_hours").
		Where(squirrel.Eq{"tenant_id": tenantID, "weekday": int(weekday), "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	var weekdayInt int
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&wh.TenantID,
		&weekdayInt,
		&wh.OpenTime,
		&wh.CloseTime,
		&wh.BreakStart,
		&wh.BreakEnd,
		&wh.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %v", ErrScanRow, err)
	}

	wh.Weekday = domain.Weekday(weekdayInt)
	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time
	return &wh, nil
}

// ListWorkingHours returns all active schedule rows of the tenant, ordered
// by weekday.
func (r *Repository) ListWorkingHours(ctx context.Context, tenantID int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("working_hours").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.WorkingHours, 0)
	for rows.Next() {
		var wh domain.WorkingHours
		var weekdayInt int
		var createdAt, updatedAt sql.NullTime
		err := rows.Scan(
			&wh.ID,
			&wh.TenantID,
			&weekdayInt,
			&wh.OpenTime,
			&wh.CloseTime,
			&wh.BreakStart,
			&wh.BreakEnd,
			&wh.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWorkingHours - scan row: %v", ErrScanRow, err)
		}
		wh.Weekday = domain.Weekday(weekdayInt)
		wh.CreatedAt = createdAt.Time
		wh.UpdatedAt = updatedAt.Time
		result = append(result, &wh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// GetSpecialDate fetches the override for (tenant, date), if any.
func (r *Repository) GetSpecialDate(ctx context.Context, tenantID int64, date time.Time) (*domain.SpecialDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(specialDateColumns...).
		From("special_dates").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDate - build select query: %v", ErrBuildQuery, err)
	}

	return scanSpecialDate(executor.QueryRowContext(ctx, query, args...))
}

// ListSpecialDates returns the tenant's overrides in [from, to], ordered
// by date. Nil bounds are open.
func (r *Repository) ListSpecialDates(ctx context.Context, tenantID int64, from, to *time.Time) ([]*domain.SpecialDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(specialDateColumns...).
		From("special_dates").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("date ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.SpecialDate, 0)
	for rows.Next() {
		var sd domain.SpecialDate
		var createdAt, updatedAt sql.NullTime
		err := rows.Scan(
			&sd.ID,
			&sd.TenantID,
			&sd.Date,
			&sd.Type,
			&sd.Description,
			&sd.OpenTime,
			&sd.CloseTime,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSpecialDates - scan row: %v", ErrScanRow, err)
		}
		sd.CreatedAt = createdAt.Time
		sd.UpdatedAt = updatedAt.Time
		result = append(result, &sd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpecialDates - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

func scanSpecialDate(row *sql.Row) (*domain.SpecialDate, error) {
	var sd domain.SpecialDate
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sd.ID,
		&sd.TenantID,
		&sd.Date,
		&sd.Type,
		&sd.Description,
		&sd.OpenTime,
		&sd.CloseTime,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSpecialDateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpecialDate - scan row: %v", ErrScanRow, err)
	}

	sd.CreatedAt = createdAt.Time
	sd.UpdatedAt = updatedAt.Time
	return &sd, nil
}
