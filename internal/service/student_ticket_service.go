package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/events"
	"github.com/devdesk/queue-api/internal/repository"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

// StudentTicketService implements the ticket workflows available to students.
// Ownership is checked by route guards before these methods run.
type StudentTicketService struct {
	tickets repository.TicketRepository
	events  eventPublisher
}

// TicketDependencies bundles requirements for the ticket services.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// CreateTicketInput describes a new ticket. Nil strings are treated as absent.
type CreateTicketInput struct {
	Title          *string
	Category       *string
	Tried          *string
	AdditionalInfo *string
}

// NewStudentTicketService constructs the service.
func NewStudentTicketService(deps TicketDependencies) *StudentTicketService {
	return &StudentTicketService{
		tickets: deps.TicketRepo,
		events:  newEventPublisher(deps.Dispatcher, deps.Logger),
	}
}

// ListOwn returns every ticket the student created, in id order.
func (s *StudentTicketService) ListOwn(ctx context.Context, studentID int64) ([]domain.Ticket, error) {
	tickets, err := s.tickets.List(ctx, repository.TicketFilter{CreatedBy: &studentID})
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return tickets, nil
}

// Create stores a ticket owned by the caller and returns the caller's tickets.
func (s *StudentTicketService) Create(ctx context.Context, student domain.Identity, input CreateTicketInput) ([]domain.Ticket, error) {
	missing := []string{}
	if input.Title == nil || strings.TrimSpace(*input.Title) == "" {
		missing = append(missing, "title")
	}
	if input.Category == nil || strings.TrimSpace(*input.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required fields", map[string]any{"missing": missing})
	}

	ticket := &domain.Ticket{
		Title:          strings.TrimSpace(*input.Title),
		Category:       strings.TrimSpace(*input.Category),
		Tried:          blankToNil(input.Tried),
		AdditionalInfo: blankToNil(input.AdditionalInfo),
		CreatedBy:      student.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticketRef(ticket.ID),
		Actor:    events.ActorFrom(student),
		Payload:  events.SnapshotOf(ticket),
	})
	return s.ListOwn(ctx, student.ID)
}

// Update writes the supplied content fields of a ticket. Assignment columns
// are rejected here; they belong to helpers.
func (s *StudentTicketService) Update(ctx context.Context, student domain.Identity, ticketID int64, changes domain.TicketChanges) ([]domain.Ticket, error) {
	if err := validateStudentChanges(&changes); err != nil {
		return nil, err
	}

	ticket, err := s.tickets.Update(ctx, ticketID, changes)
	if err != nil {
		return nil, storeError(err, "ticket", map[string]any{"id": ticketID})
	}

	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticketRef(ticket.ID),
		Actor:    events.ActorFrom(student),
		Payload:  events.TicketUpdatedPayload{Fields: changedFields(changes), Ticket: events.SnapshotOf(ticket)},
	})
	if changes.Completed.Set && changes.Completed.Value {
		s.events.publish(ctx, events.Event{
			Type:     events.EventTicketCompleted,
			TicketID: ticketRef(ticket.ID),
			Actor:    events.ActorFrom(student),
			Payload:  events.SnapshotOf(ticket),
		})
	}
	return s.ListOwn(ctx, student.ID)
}

// Remove hard-deletes the ticket and returns the caller's remaining tickets.
func (s *StudentTicketService) Remove(ctx context.Context, student domain.Identity, ticketID int64) ([]domain.Ticket, error) {
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		return nil, storeError(err, "ticket", map[string]any{"id": ticketID})
	}
	s.events.publish(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketRef(ticketID),
		Actor:    events.ActorFrom(student),
	})
	return s.ListOwn(ctx, student.ID)
}

func validateStudentChanges(changes *domain.TicketChanges) error {
	if changes.Assigned.Set || changes.AssignedTo.Set {
		return apperrors.NewValidationError("students cannot change ticket assignment", nil)
	}
	if changes.Empty() {
		return apperrors.NewValidationError("no updatable fields supplied", map[string]any{
			"allowed": []string{"title", "category", "tried", "additional_info", "completed"},
		})
	}

	invalid := map[string]any{}
	if changes.Title.Set {
		if changes.Title.Null || strings.TrimSpace(changes.Title.Value) == "" {
			invalid["title"] = "must be a non-empty string"
		} else {
			changes.Title.Value = strings.TrimSpace(changes.Title.Value)
		}
	}
	if changes.Category.Set {
		if changes.Category.Null || strings.TrimSpace(changes.Category.Value) == "" {
			invalid["category"] = "must be a non-empty string"
		} else {
			changes.Category.Value = strings.TrimSpace(changes.Category.Value)
		}
	}
	if changes.Completed.Set && changes.Completed.Null {
		invalid["completed"] = "must be a boolean"
	}
	if len(invalid) > 0 {
		return apperrors.NewValidationError("invalid field values", invalid)
	}
	changes.Tried = blankToNull(changes.Tried)
	changes.AdditionalInfo = blankToNull(changes.AdditionalInfo)
	return nil
}

// Blank optional text is stored as null.
func blankToNil(value *string) *string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	return value
}

func blankToNull(field domain.Field[string]) domain.Field[string] {
	if field.Set && !field.Null && strings.TrimSpace(field.Value) == "" {
		return domain.Null[string]()
	}
	return field
}

func changedFields(changes domain.TicketChanges) []string {
	fields := []string{}
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"title", changes.Title.Set},
		{"category", changes.Category.Set},
		{"tried", changes.Tried.Set},
		{"additional_info", changes.AdditionalInfo.Set},
		{"assigned", changes.Assigned.Set},
		{"assigned_to", changes.AssignedTo.Set},
		{"completed", changes.Completed.Set},
	} {
		if f.set {
			fields = append(fields, f.name)
		}
	}
	return fields
}
