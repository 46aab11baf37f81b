package domain

import "testing"

func TestTicketState(t *testing.T) {
	helper := int64(2)
	cases := []struct {
		name   string
		ticket Ticket
		want   TicketState
	}{
		{name: "new", ticket: Ticket{}, want: TicketStateOpenUnassigned},
		{name: "assigned", ticket: Ticket{Assigned: true, AssignedTo: &helper}, want: TicketStateOpenAssigned},
		{name: "completed", ticket: Ticket{Assigned: true, AssignedTo: &helper, Completed: true}, want: TicketStateCompleted},
		{name: "completed unassigned", ticket: Ticket{Completed: true}, want: TicketStateCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ticket.State(); got != tc.want {
				t.Fatalf("State() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestTicketChangesApply(t *testing.T) {
	tried := "rebooted"
	assignee := int64(3)
	ticket := Ticket{Title: "A", Category: "B", Tried: &tried, AssignedTo: &assignee, Assigned: true}

	changes := TicketChanges{
		Title:      Value("New title"),
		Tried:      Null[string](),
		AssignedTo: Null[int64](),
		Assigned:   Value(false),
	}
	if changes.Empty() {
		t.Fatal("changes reported empty")
	}
	changes.Apply(&ticket)

	if ticket.Title != "New title" {
		t.Errorf("title = %q", ticket.Title)
	}
	if ticket.Category != "B" {
		t.Errorf("category changed to %q", ticket.Category)
	}
	if ticket.Tried != nil {
		t.Errorf("tried = %q, want nil", *ticket.Tried)
	}
	if ticket.AssignedTo != nil || ticket.Assigned {
		t.Errorf("assignment not cleared: %+v", ticket)
	}
}

func TestTicketChangesEmpty(t *testing.T) {
	if !(TicketChanges{}).Empty() {
		t.Fatal("zero changes should be empty")
	}
}
