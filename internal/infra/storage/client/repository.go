package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
	"github.com/agendahub/scheduling-service/pkg/psqlbuilder"
)

const pgUniqueViolation = "23505"

var clientColumns = []string{
	"id",
	"tenant_id",
	"name",
	"phone",
	"origin",
	"active",
	"created_at",
	"updated_at",
}

// Repository persists clients.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a client repository over db.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByPhone fetches the tenant's client with the given normalized phone.
func (r *Repository) GetByPhone(ctx context.Context, tenantID int64, phone string) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"tenant_id": tenantID, "phone": phone}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	return scanClient(executor.QueryRowContext(ctx, query, args...), "GetByPhone")
}

// GetByID fetches one client of the tenant.
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return scanClient(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetOrCreate returns the tenant's client for the normalized phone,
// creating it on first contact. Safe under concurrent duplicate calls:
// the UNIQUE(tenant_id, phone) constraint decides the winner, the loser
// re-fetches the committed row instead of failing.
func (r *Repository) GetOrCreate(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	existing, err := r.GetByPhone(ctx, c.TenantID, c.Phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrClientNotFound) {
		return nil, err
	}

	created, err := r.create(ctx, c)
	if err == nil {
		return created, nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		// Lost the race to a concurrent insert, the committed row wins.
		return r.GetByPhone(ctx, c.TenantID, c.Phone)
	}
	return nil, err
}

func (r *Repository) create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("tenant_id", "name", "phone", "origin", "active").
		Values(c.TenantID, c.Name, c.Phone, c.Origin, true).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: create - execute insert: %v", ErrExecQuery, err)
	}

	c.Active = true
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return c, nil
}

func scanClient(row *sql.Row, method string) (*domain.Client, error) {
	var c domain.Client
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Phone,
		&c.Origin,
		&c.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan client: %v", ErrScanRow, method, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	return &c, nil
}
