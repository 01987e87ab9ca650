package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
	"github.com/agendahub/scheduling-service/pkg/psqlbuilder"
)

// Postgres SQLSTATE codes the repository reacts to.
const (
	pgUniqueViolation      = "23505"
	pgLockNotAvailable     = "55P03"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

var bookingColumns = []string{
	"id",
	"tenant_id",
	"client_id",
	"service_id",
	"professional_id",
	"code",
	"start_at",
	"end_at",
	"status",
	"charged_amount",
	"notes",
	"recurrence_rule_id",
	"service_name",
	"professional_name",
	"client_name",
	"client_phone",
	"created_at",
	"updated_at",
}

// Repository persists bookings. All queries are tenant-scoped: every WHERE
// clause leads with tenant_id so rows of other tenants are never read or
// locked.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository over db.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking and fills in the generated fields.
// Inside a transaction (via the context) the insert only becomes visible to
// other lock queries after commit.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"tenant_id",
			"client_id",
			"service_id",
			"professional_id",
			"code",
			"start_at",
			"end_at",
			"status",
			"charged_amount",
			"notes",
			"recurrence_rule_id",
			"service_name",
			"professional_name",
			"client_name",
			"client_phone",
		).
		Values(
			b.TenantID,
			b.ClientID,
			b.ServiceID,
			b.ProfessionalID,
			b.Code,
			b.StartAt,
			b.EndAt,
			b.Status,
			b.ChargedAmount,
			b.Notes,
			b.RecurrenceRuleID,
			b.ServiceName,
			b.ProfessionalName,
			b.ClientName,
			b.ClientPhone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateCode
		}
		if isTransientLockError(err) {
			return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrLockNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// LockOverlapping acquires an exclusive row lock on every active booking of
// (tenant, professional) whose interval overlaps [start, end), and returns
// the locked rows. The lock acquisition is part of the same query that
// evaluates the overlap predicate (lock-then-read): two concurrent
// transactions serialize on the same row set, so exactly one of them can
// observe it empty.
//
// professionalID == nil locks across all of the tenant's professionals.
//
// Must run inside a transaction; calling it outside one is a programming
// error because the lock would be released immediately.
func (r *Repository) LockOverlapping(ctx context.Context, tenantID int64, professionalID *int64, start, end time.Time) ([]*domain.Booking, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, fmt.Errorf("%w: LockOverlapping - must be called inside a transaction", ErrExecQuery)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		// Half-open interval overlap: start_at < end AND end_at > start.
		// Back-to-back rows (end_at == start) are not locked.
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		Suffix("FOR UPDATE")

	if professionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: LockOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isTransientLockError(err) {
			return nil, fmt.Errorf("%w: LockOverlapping - acquire row locks: %v", ErrLockNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: LockOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetOverlapping returns the active bookings of (tenant, professional)
// overlapping [start, end) without locking them. Read-only callers
// (availability) use this; writers must use LockOverlapping.
func (r *Repository) GetOverlapping(ctx context.Context, tenantID int64, professionalID *int64, start, end time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		OrderBy("start_at ASC")

	if professionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByID fetches one booking of the tenant.
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByCode fetches the tenant's booking with the given chat code,
// restricted to the given statuses (nil = any status).
func (r *Repository) GetByCode(ctx context.Context, tenantID int64, code string, statuses []domain.BookingStatus) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "code": code})

	if len(statuses) > 0 {
		statusStrings := make([]string, len(statuses))
		for i, s := range statuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByCode")
}

// ExistsExact reports whether an active booking with the exact same
// (tenant, client, professional, service, start) already exists. The
// recurrence expander uses it as its idempotence guard, re-runs over an
// unchanged table must not create duplicates.
func (r *Repository) ExistsExact(ctx context.Context, tenantID, clientID int64, professionalID *int64, serviceID int64, start time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"tenant_id":  tenantID,
			"client_id":  clientID,
			"service_id": serviceID,
			"start_at":   start,
		}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Limit(1)

	if professionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *professionalID})
	} else {
		selectBuilder = selectBuilder.Where("professional_id IS NULL")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsExact - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsExact - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// GetWithFilter returns the tenant's bookings narrowed by filter.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.TenantBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.ProfessionalID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"professional_id": *filter.ProfessionalID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"client_id": *filter.ClientID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": filter.EndDate.AddDate(0, 0, 1)})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
	}

	// Single-day queries read like an agenda, everything else newest-first.
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_at DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActiveInPeriod counts the tenant's active bookings starting in
// [from, to). Used for the bookings-per-month plan limit.
func (r *Repository) CountActiveInPeriod(ctx context.Context, tenantID int64, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.GtOrEq{"start_at": from}).
		Where(squirrel.Lt{"start_at": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveInPeriod - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveInPeriod - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

// UpdateStatus transitions the booking to the given status.
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Complete transitions the booking to a terminal status and records the
// charged amount when provided.
func (r *Repository) Complete(ctx context.Context, tenantID, id int64, status domain.BookingStatus, chargedAmount *float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id})

	if chargedAmount != nil {
		updateBuilder = updateBuilder.Set("charged_amount", *chargedAmount)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *Repository) scanOne(row *sql.Row, method string) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.TenantID,
		&b.ClientID,
		&b.ServiceID,
		&b.ProfessionalID,
		&b.Code,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.ChargedAmount,
		&b.Notes,
		&b.RecurrenceRuleID,
		&b.ServiceName,
		&b.ProfessionalName,
		&b.ClientName,
		&b.ClientPhone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.TenantID,
			&b.ClientID,
			&b.ServiceID,
			&b.ProfessionalID,
			&b.Code,
			&b.StartAt,
			&b.EndAt,
			&b.Status,
			&b.ChargedAmount,
			&b.Notes,
			&b.RecurrenceRuleID,
			&b.ServiceName,
			&b.ProfessionalName,
			&b.ClientName,
			&b.ClientPhone,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// isTransientLockError recognizes the Postgres failures worth one retry:
// lock wait timeout, serialization failure, deadlock victim.
func isTransientLockError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pgLockNotAvailable, pgSerializationFailure, pgDeadlockDetected:
		return true
	}
	return false
}
