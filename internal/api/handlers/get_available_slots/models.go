package get_available_slots

import (
	"time"

	availability "github.com/agendahub/scheduling-service/internal/usecase/get_available_slots"
)

// SlotResponse pairs the chat-friendly time with the absolute instant.
type SlotResponse struct {
	Time  string `json:"time"`  // "HH:MM", tenant-local
	Start string `json:"start"` // RFC 3339
}

// AvailableSlotsResponse HTTP response model. Reason is present only when
// the day yields no window.
type AvailableSlotsResponse struct {
	Date              string         `json:"date"`
	Slots             []SlotResponse `json:"slots"`
	Reason            string         `json:"reason,omitempty"`
	ReasonDescription string         `json:"reason_description,omitempty"`
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *availability.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:  slot.Time.String(),
			Start: slot.StartAt.Format(time.RFC3339),
		})
	}

	return &AvailableSlotsResponse{
		Date:              resp.Date.Format("2006-01-02"),
		Slots:             slots,
		Reason:            resp.Reason,
		ReasonDescription: resp.ReasonDescription,
	}
}
