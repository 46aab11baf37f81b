package service

import (
	"context"
	"errors"

	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/events"
	"github.com/devdesk/queue-api/internal/repository"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

// HelperTicketService implements the queue operations available to helpers.
type HelperTicketService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
	events  eventPublisher
}

// AssignmentChanges are the columns a helper may write.
type AssignmentChanges struct {
	Assigned   domain.Field[bool]
	AssignedTo domain.Field[int64]
	Completed  domain.Field[bool]
}

// NewHelperTicketService constructs the service.
func NewHelperTicketService(deps TicketDependencies) *HelperTicketService {
	return &HelperTicketService{
		tickets: deps.TicketRepo,
		users:   deps.UserRepo,
		events:  newEventPublisher(deps.Dispatcher, deps.Logger),
	}
}

// ListHelpers returns the accounts tickets can be assigned to: every helper
// plus the requester.
func (s *HelperTicketService) ListHelpers(ctx context.Context, requesterID int64) ([]domain.UserSummary, error) {
	helpers, err := s.users.ListHelpers(ctx, requesterID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return helpers, nil
}

// ListOpen returns every ticket that is not completed, in id order.
func (s *HelperTicketService) ListOpen(ctx context.Context) ([]domain.Ticket, error) {
	open := false
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{Completed: &open})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// UpdateTicket applies assignment changes to any ticket. Sending assigned
// false without an assignee unassigns and reopens the ticket whatever else
// was supplied. An assignee implies assigned when that flag is absent, and a
// null assignee implies the opposite.
func (s *HelperTicketService) UpdateTicket(ctx context.Context, actor domain.Identity, ticketID int64, changes AssignmentChanges) ([]domain.Ticket, error) {
	if !changes.Assigned.Set && !changes.AssignedTo.Set && !changes.Completed.Set {
		return nil, apperrors.NewValidationError("no updatable fields supplied", map[string]any{
			"allowed": []string{"assigned_to", "assigned", "completed"},
		})
	}
	invalid := map[string]any{}
	if changes.Assigned.Set && changes.Assigned.Null {
		invalid["assigned"] = "must be a boolean"
	}
	if changes.Completed.Set && changes.Completed.Null {
		invalid["completed"] = "must be a boolean"
	}
	if len(invalid) > 0 {
		return nil, apperrors.NewValidationError("invalid field values", invalid)
	}

	var (
		update    domain.TicketChanges
		eventType events.EventType
	)
	if isUnassign(changes) {
		update = domain.TicketChanges{
			Assigned:   domain.Value(false),
			AssignedTo: domain.Null[int64](),
			Completed:  domain.Value(false),
		}
		eventType = events.EventTicketUnassigned
	} else {
		update = domain.TicketChanges{
			Assigned:   changes.Assigned,
			AssignedTo: changes.AssignedTo,
			Completed:  changes.Completed,
		}
		if changes.AssignedTo.Set && !changes.AssignedTo.Null {
			if err := s.requireHelper(ctx, changes.AssignedTo.Value); err != nil {
				return nil, err
			}
			if !changes.Assigned.Set {
				update.Assigned = domain.Value(true)
			}
		} else if changes.AssignedTo.Set && !changes.Assigned.Set {
			update.Assigned = domain.Value(false)
		}
		eventType = assignmentEventType(update)
	}

	ticket, err := s.tickets.Update(ctx, ticketID, update)
	if err != nil {
		return nil, storeError(err, "ticket", map[string]any{"id": ticketID})
	}

	s.events.publish(ctx, events.Event{
		Type:     eventType,
		TicketID: ticketRef(ticket.ID),
		Actor:    events.ActorFrom(actor),
		Payload:  events.SnapshotOf(ticket),
	})
	return s.ListOpen(ctx)
}

func (s *HelperTicketService) requireHelper(ctx context.Context, userID int64) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewValidationError("assigned_to must reference a helper", map[string]any{"assigned_to": userID})
		}
		return apperrors.NewInternalError(err)
	}
	if user.Role != domain.RoleHelper {
		return apperrors.NewValidationError("assigned_to must reference a helper", map[string]any{"assigned_to": userID})
	}
	return nil
}

func isUnassign(changes AssignmentChanges) bool {
	return changes.Assigned.Set && !changes.Assigned.Value &&
		(!changes.AssignedTo.Set || changes.AssignedTo.Null)
}

func assignmentEventType(update domain.TicketChanges) events.EventType {
	switch {
	case update.Completed.Set && update.Completed.Value:
		return events.EventTicketCompleted
	case update.Assigned.Set && update.Assigned.Value:
		return events.EventTicketAssigned
	case update.Assigned.Set && update.AssignedTo.Set && update.AssignedTo.Null:
		return events.EventTicketUnassigned
	default:
		return events.EventTicketUpdated
	}
}
