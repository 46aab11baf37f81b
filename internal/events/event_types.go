package events

import (
	"time"

	"github.com/devdesk/queue-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user.registered"
	EventTicketCreated    EventType = "ticket.created"
	EventTicketUpdated    EventType = "ticket.updated"
	EventTicketDeleted    EventType = "ticket.deleted"
	EventTicketAssigned   EventType = "ticket.assigned"
	EventTicketUnassigned EventType = "ticket.unassigned"
	EventTicketCompleted  EventType = "ticket.completed"
)

// Actor identifies who triggered an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// ActorFrom builds the actor for an authenticated identity.
func ActorFrom(identity domain.Identity) Actor {
	return Actor{UserID: identity.ID, Role: identity.Role}
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  *int64    `json:"ticket_id,omitempty"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}

// TicketSnapshot is the ticket state after the change.
type TicketSnapshot struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	CreatedBy  int64  `json:"created_by"`
	Assigned   bool   `json:"assigned"`
	AssignedTo *int64 `json:"assigned_to"`
	Completed  bool   `json:"completed"`
}

// SnapshotOf copies the event-relevant columns of t.
func SnapshotOf(t *domain.Ticket) TicketSnapshot {
	return TicketSnapshot{
		Title:      t.Title,
		Category:   t.Category,
		CreatedBy:  t.CreatedBy,
		Assigned:   t.Assigned,
		AssignedTo: t.AssignedTo,
		Completed:  t.Completed,
	}
}

// TicketUpdatedPayload lists the columns a student edit touched.
type TicketUpdatedPayload struct {
	Fields []string       `json:"fields"`
	Ticket TicketSnapshot `json:"ticket"`
}
