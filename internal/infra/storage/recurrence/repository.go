// Package recurrence persists the booking templates expanded by the
// recurrence job.
package recurrence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
	"github.com/agendahub/scheduling-service/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"tenant_id",
	"client_id",
	"service_id",
	"professional_id",
	"frequency",
	"weekdays",
	"day_of_month",
	"start_time",
	"start_date",
	"end_date",
	"active",
	"created_at",
	"updated_at",
}

// Repository stores recurrence rules.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a recurrence repository over db.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a rule scoped to the tenant.
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.RecurrenceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("recurrence_rules").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return scanRule(executor.QueryRowContext(ctx, query, args...))
}

// ListActive returns the active rules of one tenant, oldest first.
func (r *Repository) ListActive(ctx context.Context, tenantID int64) ([]*domain.RecurrenceRule, error) {
	return r.list(ctx, squirrel.Eq{"tenant_id": tenantID, "active": true})
}

// ListAllActive returns the active rules of every tenant. Used by the
// expansion job.
func (r *Repository) ListAllActive(ctx context.Context) ([]*domain.RecurrenceRule, error) {
	return r.list(ctx, squirrel.Eq{"active": true})
}

func (r *Repository) list(ctx context.Context, where squirrel.Eq) ([]*domain.RecurrenceRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("recurrence_rules").
		Where(where).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.RecurrenceRule, 0)
	for rows.Next() {
		rule, err := scanRuleFromRows(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}

// Deactivate flips the rule off. Idempotent.
func (r *Repository) Deactivate(ctx context.Context, tenantID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("recurrence_rules").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

type ruleScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row *sql.Row) (*domain.RecurrenceRule, error) {
	rule, err := scanRuleColumns(row)
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanRule - scan row: %v", ErrScanRow, err)
	}
	return rule, nil
}

func scanRuleFromRows(rows *sql.Rows) (*domain.RecurrenceRule, error) {
	rule, err := scanRuleColumns(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: scanRuleFromRows - scan row: %v", ErrScanRow, err)
	}
	return rule, nil
}

func scanRuleColumns(s ruleScanner) (*domain.RecurrenceRule, error) {
	var rule domain.RecurrenceRule
	var weekdays pq.Int64Array
	var endDate sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := s.Scan(
		&rule.ID,
		&rule.TenantID,
		&rule.ClientID,
		&rule.ServiceID,
		&rule.ProfessionalID,
		&rule.Frequency,
		&weekdays,
		&rule.DayOfMonth,
		&rule.StartTime,
		&rule.StartDate,
		&endDate,
		&rule.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.Weekdays = make([]domain.Weekday, 0, len(weekdays))
	for _, d := range weekdays {
		rule.Weekdays = append(rule.Weekdays, domain.Weekday(d))
	}
	if endDate.Valid {
		rule.EndDate = &endDate.Time
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time
	return &rule, nil
}
