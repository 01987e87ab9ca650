// Package tenant resolves business accounts and their engine configuration.
package tenant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/pkg/dbmetrics"
	"github.com/agendahub/scheduling-service/pkg/psqlbuilder"
)

var tenantColumns = []string{
	"id",
	"name",
	"slug",
	"timezone",
	"api_key",
	"active",
	"created_at",
	"updated_at",
}

var configColumns = []string{
	"id",
	"tenant_id",
	"slot_granularity_minutes",
	"lead_time_minutes",
	"horizon_days",
	"max_professionals",
	"max_bookings_per_month",
	"created_at",
	"updated_at",
}

// Repository reads tenants and their per-tenant configuration.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a tenant repository over db.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByAPIKey resolves the active tenant owning the key. Used by the
// authentication middleware on every request.
func (r *Repository) GetByAPIKey(ctx context.Context, apiKey string) (*domain.Tenant, error) {
	return r.getTenant(ctx, squirrel.Eq{"api_key": apiKey, "active": true})
}

// GetByID fetches an active tenant.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	return r.getTenant(ctx, squirrel.Eq{"id": id, "active": true})
}

func (r *Repository) getTenant(ctx context.Context, where squirrel.Eq) (*domain.Tenant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tenantColumns...).
		From("tenants").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getTenant - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Tenant
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.Timezone,
		&t.APIKey,
		&t.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getTenant - scan row: %v", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	return &t, nil
}

// GetConfig fetches the tenant's engine configuration. A tenant without a
// config row gets the defaults.
func (r *Repository) GetConfig(ctx context.Context, tenantID int64) (*domain.TenantConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("tenant_configs").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.TenantConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.TenantID,
		&cfg.SlotGranularityMinutes,
		&cfg.LeadTimeMinutes,
		&cfg.HorizonDays,
		&cfg.MaxProfessionals,
		&cfg.MaxBookingsPerMonth,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return defaultConfig(tenantID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfig - scan row: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time
	return &cfg, nil
}

func defaultConfig(tenantID int64) *domain.TenantConfig {
	return &domain.TenantConfig{
		TenantID:               tenantID,
		SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
		LeadTimeMinutes:        domain.DefaultLeadTimeMinutes,
		HorizonDays:            domain.DefaultHorizonDays,
		MaxProfessionals:       domain.DefaultMaxProfessionals,
		MaxBookingsPerMonth:    domain.DefaultMaxBookingsPerMonth,
	}
}
