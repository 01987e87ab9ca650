package get_available_slots

import (
	"time"

	"github.com/agendahub/scheduling-service/internal/domain"
	"github.com/agendahub/scheduling-service/pkg/types"
)

// Request asks for the bookable slots of one date.
type Request struct {
	Tenant         *domain.Tenant
	ServiceID      int64     // determines the slot duration
	ProfessionalID *int64    // nil = any professional of the tenant
	Date           time.Time // calendar date, tenant-local
	Granularity    *int      // minutes, overrides the tenant config when set
}

// Response carries the ordered slot list, or a closed reason with no slots.
type Response struct {
	Date           time.Time
	ServiceID      int64
	ProfessionalID *int64
	Slots          []Slot

	// Reason is set when the day yields no window at all: closed,
	// closed_holiday or closed_special. ReasonDescription carries the
	// special date's description verbatim.
	Reason            string
	ReasonDescription string
}

// Slot is one bookable start.
type Slot struct {
	Time    types.TimeString // "HH:MM", tenant-local
	StartAt time.Time        // the same instant, absolute
}
