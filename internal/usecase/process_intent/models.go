package process_intent

import (
	"github.com/agendahub/scheduling-service/internal/domain"
)

// Intents understood by the router.
const (
	IntentSchedule = "schedule"
	IntentCancel   = "cancel"
	IntentQuery    = "query"
	IntentConfirm  = "confirm"
)

// Request is one single-turn bot command. Every call carries full context;
// no session state is retained between calls.
type Request struct {
	Tenant    *domain.Tenant
	RequestID string
	Phone     string
	Message   string // raw user message, audit only
	Intent    string

	Schedule *ScheduleIntent
	Cancel   *CancelIntent
	Query    *QueryIntent
	Confirm  *ConfirmIntent
}

// ScheduleIntent books a slot.
type ScheduleIntent struct {
	Service      string // case-insensitive substring of the service name
	Professional string // optional, empty = tenant's first active professional
	Date         string // YYYY-MM-DD
	Time         string // HH:MM
	ClientName   string // optional, used when the client is created
	Notes        string // optional
}

// CancelIntent cancels a booking by its chat code.
type CancelIntent struct {
	Code string
}

// QueryIntent lists available slots.
type QueryIntent struct {
	Service      string // required, determines the duration
	Professional string // optional
	Date         string // YYYY-MM-DD, empty = today
}

// ConfirmIntent confirms a pending booking by its chat code.
type ConfirmIntent struct {
	Code string
}

// Response is the router's single terminal result: a chat-formatted
// message plus an optional structured payload.
type Response struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	ErrorKind string   `json:"errorKind,omitempty"`
	BookingID *int64   `json:"bookingId,omitempty"`
	Code      *string  `json:"code,omitempty"`
	Slots     []string `json:"slots,omitempty"` // "HH:MM"
}
