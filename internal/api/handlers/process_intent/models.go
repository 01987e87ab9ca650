package process_intent

import (
	"github.com/agendahub/scheduling-service/internal/domain"
	intent "github.com/agendahub/scheduling-service/internal/usecase/process_intent"
)

// BotCommandRequest is the payload sent by the WhatsApp collaborator. The
// intent-specific blocks are tagged by the intent field; extras are ignored.
type BotCommandRequest struct {
	RequestID string `json:"requestId"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	Intent    string `json:"intent"`

	Schedule *SchedulePayload `json:"schedule,omitempty"`
	Cancel   *CodePayload     `json:"cancel,omitempty"`
	Query    *QueryPayload    `json:"query,omitempty"`
	Confirm  *CodePayload     `json:"confirm,omitempty"`
}

type SchedulePayload struct {
	Service      string `json:"service"`
	Professional string `json:"professional,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	ClientName   string `json:"clientName,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type CodePayload struct {
	Code string `json:"code"`
}

type QueryPayload struct {
	Service      string `json:"service,omitempty"`
	Professional string `json:"professional,omitempty"`
	Date         string `json:"date,omitempty"`
}

// ToUseCaseRequest maps the HTTP payload onto the router's request.
func (r *BotCommandRequest) ToUseCaseRequest(tenant *domain.Tenant) *intent.Request {
	req := &intent.Request{
		Tenant:    tenant,
		RequestID: r.RequestID,
		Phone:     r.Phone,
		Message:   r.Message,
		Intent:    r.Intent,
	}

	if r.Schedule != nil {
		req.Schedule = &intent.ScheduleIntent{
			Service:      r.Schedule.Service,
			Professional: r.Schedule.Professional,
			Date:         r.Schedule.Date,
			Time:         r.Schedule.Time,
			ClientName:   r.Schedule.ClientName,
			Notes:        r.Schedule.Notes,
		}
	}
	if r.Cancel != nil {
		req.Cancel = &intent.CancelIntent{Code: r.Cancel.Code}
	}
	if r.Query != nil {
		req.Query = &intent.QueryIntent{
			Service:      r.Query.Service,
			Professional: r.Query.Professional,
			Date:         r.Query.Date,
		}
	}
	if r.Confirm != nil {
		req.Confirm = &intent.ConfirmIntent{Code: r.Confirm.Code}
	}

	return req
}
