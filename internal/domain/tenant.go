package domain

import "time"

// Tenant is a business account. Every row the engine reads or locks is
// scoped by tenant.
type Tenant struct {
	ID       int64
	Name     string
	Slug     string
	Timezone string // IANA name, e.g. "America/Sao_Paulo"
	APIKey   string // authenticates the bot/n8n collaborator
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location resolves the tenant's timezone, falling back to UTC when the
// stored name does not parse.
func (t *Tenant) Location() *time.Location {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TenantConfig is the per-tenant engine configuration, passed explicitly
// into engine calls instead of being read from global state.
type TenantConfig struct {
	ID       int64
	TenantID int64

	SlotGranularityMinutes int
	LeadTimeMinutes        int
	HorizonDays            int

	// Plan limits enforced by the billing collaborator; carried here so
	// engine callers can report them.
	MaxProfessionals    int
	MaxBookingsPerMonth int

	CreatedAt time.Time
	UpdatedAt time.Time
}
