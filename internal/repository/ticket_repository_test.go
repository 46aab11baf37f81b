package repository

import (
	"reflect"
	"testing"

	"github.com/devdesk/queue-api/internal/domain"
)

func TestBuildTicketUpdate(t *testing.T) {
	cases := []struct {
		name     string
		changes  domain.TicketChanges
		wantSet  []string
		wantArgs []any
	}{
		{
			name:     "nothing",
			changes:  domain.TicketChanges{},
			wantSet:  nil,
			wantArgs: nil,
		},
		{
			name: "student content fields",
			changes: domain.TicketChanges{
				Title: domain.Value("Laptop"),
				Tried: domain.Null[string](),
			},
			wantSet:  []string{"title=$1", "tried=$2"},
			wantArgs: []any{"Laptop", nil},
		},
		{
			name: "helper reset",
			changes: domain.TicketChanges{
				Assigned:   domain.Value(false),
				AssignedTo: domain.Null[int64](),
				Completed:  domain.Value(false),
			},
			wantSet:  []string{"assigned=$1", "assigned_to=$2", "completed=$3"},
			wantArgs: []any{false, nil, false},
		},
		{
			name: "assign",
			changes: domain.TicketChanges{
				AssignedTo: domain.Value(int64(7)),
			},
			wantSet:  []string{"assigned_to=$1"},
			wantArgs: []any{int64(7)},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			set, args := buildTicketUpdate(tc.changes)
			if !reflect.DeepEqual(set, tc.wantSet) {
				t.Errorf("set = %v, want %v", set, tc.wantSet)
			}
			if !reflect.DeepEqual(args, tc.wantArgs) {
				t.Errorf("args = %#v, want %#v", args, tc.wantArgs)
			}
		})
	}
}
