package domain

import "time"

// TicketState is the derived lifecycle position of a ticket.
type TicketState string

const (
	TicketStateOpenUnassigned TicketState = "open_unassigned"
	TicketStateOpenAssigned   TicketState = "open_assigned"
	TicketStateCompleted      TicketState = "completed"
)

// Ticket is a support request created by a student.
type Ticket struct {
	ID             int64
	Title          string
	Category       string
	Tried          *string
	AdditionalInfo *string
	CreatedBy      int64
	CreatedOn      time.Time
	Assigned       bool
	AssignedTo     *int64
	Completed      bool
}

// State derives the lifecycle state. Storage does not enforce it; a
// completed ticket is completed regardless of assignment.
func (t *Ticket) State() TicketState {
	switch {
	case t.Completed:
		return TicketStateCompleted
	case t.Assigned:
		return TicketStateOpenAssigned
	default:
		return TicketStateOpenUnassigned
	}
}

// Field is an optional column update. Set marks presence; a set field with
// Null clears a nullable column.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Value builds a set, non-null field.
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null builds a set field that clears the column.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// TicketChanges lists the columns a single update writes. Unset fields are
// left untouched.
type TicketChanges struct {
	Title          Field[string]
	Category       Field[string]
	Tried          Field[string]
	AdditionalInfo Field[string]
	Assigned       Field[bool]
	AssignedTo     Field[int64]
	Completed      Field[bool]
}

// Empty reports whether no column would be written.
func (c TicketChanges) Empty() bool {
	return !c.Title.Set && !c.Category.Set && !c.Tried.Set && !c.AdditionalInfo.Set &&
		!c.Assigned.Set && !c.AssignedTo.Set && !c.Completed.Set
}

// Apply merges the changes into t. Used by in-memory stores and for
// building event payloads.
func (c TicketChanges) Apply(t *Ticket) {
	if c.Title.Set {
		t.Title = c.Title.Value
	}
	if c.Category.Set {
		t.Category = c.Category.Value
	}
	if c.Tried.Set {
		t.Tried = nullableString(c.Tried)
	}
	if c.AdditionalInfo.Set {
		t.AdditionalInfo = nullableString(c.AdditionalInfo)
	}
	if c.Assigned.Set {
		t.Assigned = c.Assigned.Value
	}
	if c.AssignedTo.Set {
		if c.AssignedTo.Null {
			t.AssignedTo = nil
		} else {
			id := c.AssignedTo.Value
			t.AssignedTo = &id
		}
	}
	if c.Completed.Set {
		t.Completed = c.Completed.Value
	}
}

func nullableString(f Field[string]) *string {
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}
