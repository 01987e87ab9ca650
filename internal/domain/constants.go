package domain

// Default engine configuration, used when a tenant has no config row.
const (
	DefaultSlotGranularityMinutes = 30
	DefaultLeadTimeMinutes        = 60 // same-day bookings need 1h notice
	DefaultHorizonDays            = 60 // recurrence expansion window
	DefaultMaxProfessionals       = 5
	DefaultMaxBookingsPerMonth    = 0 // 0 = unlimited
)

// Business validation bounds.
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480
	MinDayOfMonth             = 1
	MaxDayOfMonth             = 31
	MaxNotesLength            = 500
)

// Format constants.
const (
	DateFormat        = "2006-01-02" // YYYY-MM-DD
	DisplayDateFormat = "02/01/2006" // DD/MM/YYYY, chat display
)

// ActiveStatuses are the statuses that occupy a time slot. Conflict checks
// and availability queries consider only these.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses are statuses that free the slot.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
