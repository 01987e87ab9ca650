// Package catalog stores the tenant's bookable services and professionals.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
	"github.com/agendahub/scheduling-service/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"tenant_id",
	"name",
	"description",
	"price",
	"duration_minutes",
	"active",
	"created_at",
	"updated_at",
}

var professionalColumns = []string{
	"id",
	"tenant_id",
	"name",
	"phone",
	"active",
	"created_at",
	"updated_at",
}

// Repository reads the tenant's service and professional catalog.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a catalog repository over db.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID fetches one active service of the tenant.
func (r *Repository) GetServiceByID(ctx context.Context, tenantID, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	return scanService(executor.QueryRowContext(ctx, query, args...), "GetServiceByID")
}

// FindServiceByName resolves a service by case-insensitive substring match
// against the tenant's active services. The first match in the catalog's
// default ordering (name ASC) wins, there is no ranking.
func (r *Repository) FindServiceByName(ctx context.Context, tenantID int64, name string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true}).
		Where(squirrel.ILike{"name": containsPattern(name)}).
		OrderBy("name ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindServiceByName - build select query: %v", ErrBuildQuery, err)
	}

	return scanService(executor.QueryRowContext(ctx, query, args...), "FindServiceByName")
}

// ListActiveServices returns the tenant's active services ordered by name.
func (r *Repository) ListActiveServices(ctx context.Context, tenantID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanServiceRow(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - rows error: %v", ErrScanRow, err)
	}
	return services, nil
}

// GetProfessionalByID fetches one active professional of the tenant.
func (r *Repository) GetProfessionalByID(ctx context.Context, tenantID, id int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetProfessionalByID - build select query: %v", ErrBuildQuery, err)
	}

	return scanProfessional(executor.QueryRowContext(ctx, query, args...), "GetProfessionalByID")
}

// FindProfessionalByName resolves a professional by case-insensitive
// substring match, first match in name order wins.
func (r *Repository) FindProfessionalByName(ctx context.Context, tenantID int64, name string) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true}).
		Where(squirrel.ILike{"name": containsPattern(name)}).
		OrderBy("name ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindProfessionalByName - build select query: %v", ErrBuildQuery, err)
	}

	return scanProfessional(executor.QueryRowContext(ctx, query, args...), "FindProfessionalByName")
}

// FirstActiveProfessional returns the tenant's default professional: the
// first active one in the catalog's default ordering.
func (r *Repository) FirstActiveProfessional(ctx context.Context, tenantID int64) (*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true}).
		OrderBy("name ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FirstActiveProfessional - build select query: %v", ErrBuildQuery, err)
	}

	return scanProfessional(executor.QueryRowContext(ctx, query, args...), "FirstActiveProfessional")
}

// ListActiveProfessionals returns the tenant's active professionals
// ordered by name.
func (r *Repository) ListActiveProfessionals(ctx context.Context, tenantID int64) ([]*domain.Professional, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(professionalColumns...).
		From("professionals").
		Where(squirrel.Eq{"tenant_id": tenantID, "active": true}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveProfessionals - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveProfessionals - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	professionals := make([]*domain.Professional, 0)
	for rows.Next() {
		var p domain.Professional
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.TenantID, &p.Name, &p.Phone, &p.Active, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListActiveProfessionals - scan row: %v", ErrScanRow, err)
		}
		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time
		professionals = append(professionals, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveProfessionals - rows error: %v", ErrScanRow, err)
	}
	return professionals, nil
}

func scanService(row *sql.Row, method string) (*domain.Service, error) {
	var s domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.Name,
		&s.Description,
		&s.Price,
		&s.DurationMinutes,
		&s.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan service: %v", ErrScanRow, method, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

func scanServiceRow(rows *sql.Rows) (*domain.Service, error) {
	var s domain.Service
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&s.ID,
		&s.TenantID,
		&s.Name,
		&s.Description,
		&s.Price,
		&s.DurationMinutes,
		&s.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: scanServiceRow - scan row: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

func scanProfessional(row *sql.Row, method string) (*domain.Professional, error) {
	var p domain.Professional
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.Name,
		&p.Phone,
		&p.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfessionalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan professional: %v", ErrScanRow, method, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds the ILIKE substring pattern for a chat-supplied
// name. LIKE metacharacters in the input are escaped so they match
// literally instead of widening the search.
func containsPattern(name string) string {
	return "%" + likeEscaper.Replace(name) + "%"
}
