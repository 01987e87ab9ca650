package domain

import "time"

// Client is a person who books appointments with a tenant. Identified by
// normalized phone number, unique per tenant.
type Client struct {
	ID       int64
	TenantID int64
	Name     string
	Phone    string // normalized, see pkg/phone
	Origin   string // where the client came from: whatsapp, manual, site
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Client origins.
const (
	OriginWhatsApp = "whatsapp"
	OriginManual   = "manual"
	OriginSite     = "site"
)
