package domain

import "time"

// Service is a bookable offering of a tenant (haircut, beard trim, ...).
type Service struct {
	ID              int64
	TenantID        int64
	Name            string
	Description     string
	Price           *float64
	DurationMinutes int
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Professional is a staff member bookings can be assigned to.
type Professional struct {
	ID       int64
	TenantID int64
	Name     string
	Phone    string
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
