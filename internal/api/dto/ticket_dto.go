package dto

import (
	"time"

	"github.com/devdesk/queue-api/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title          Optional[string] `json:"title"`
	Category       Optional[string] `json:"category"`
	Tried          Optional[string] `json:"tried"`
	AdditionalInfo Optional[string] `json:"additional_info"`
}

// StudentTicketUpdateRequest payload. Other members are ignored.
type StudentTicketUpdateRequest struct {
	Title          Optional[string] `json:"title"`
	Category       Optional[string] `json:"category"`
	Tried          Optional[string] `json:"tried"`
	AdditionalInfo Optional[string] `json:"additional_info"`
	Completed      Optional[bool]   `json:"completed"`
}

// Changes converts the request into a column update.
func (r StudentTicketUpdateRequest) Changes() domain.TicketChanges {
	return domain.TicketChanges{
		Title:          r.Title.Field(),
		Category:       r.Category.Field(),
		Tried:          r.Tried.Field(),
		AdditionalInfo: r.AdditionalInfo.Field(),
		Completed:      r.Completed.Field(),
	}
}

// HelperTicketUpdateRequest payload. Other members are ignored.
type HelperTicketUpdateRequest struct {
	AssignedTo Optional[int64] `json:"assigned_to"`
	Assigned   Optional[bool]  `json:"assigned"`
	Completed  Optional[bool]  `json:"completed"`
}

// TicketResponse is the wire form of a ticket.
type TicketResponse struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Category       string    `json:"category"`
	Tried          *string   `json:"tried"`
	AdditionalInfo *string   `json:"additional_info"`
	CreatedBy      int64     `json:"created_by"`
	CreatedOn      time.Time `json:"created_on"`
	Assigned       bool      `json:"assigned"`
	AssignedTo     *int64    `json:"assigned_to"`
	Completed      bool      `json:"completed"`
}

// Tickets converts domain tickets, always yielding a non-nil slice.
func Tickets(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, TicketResponse{
			ID:             t.ID,
			Title:          t.Title,
			Category:       t.Category,
			Tried:          t.Tried,
			AdditionalInfo: t.AdditionalInfo,
			CreatedBy:      t.CreatedBy,
			CreatedOn:      t.CreatedOn,
			Assigned:       t.Assigned,
			AssignedTo:     t.AssignedTo,
			Completed:      t.Completed,
		})
	}
	return out
}
