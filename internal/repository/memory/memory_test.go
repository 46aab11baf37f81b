package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/repository"
)

func seedUsers(t *testing.T, users *UserRepository, accounts ...domain.User) []domain.User {
	t.Helper()
	out := make([]domain.User, 0, len(accounts))
	for _, u := range accounts {
		u := u
		if err := users.Create(context.Background(), &u); err != nil {
			t.Fatalf("create %s: %v", u.Username, err)
		}
		out = append(out, u)
	}
	return out
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	users := NewUserRepository()
	seedUsers(t, users, domain.User{Username: "ada", Role: domain.RoleStudent})

	err := users.Create(context.Background(), &domain.User{Username: "ada", Role: domain.RoleHelper})
	if !errors.Is(err, repository.ErrDuplicateUsername) {
		t.Fatalf("err = %v, want ErrDuplicateUsername", err)
	}
	if users.Len() != 1 {
		t.Fatalf("len = %d", users.Len())
	}
}

func TestUserRepositoryListHelpers(t *testing.T) {
	users := NewUserRepository()
	created := seedUsers(t, users,
		domain.User{Username: "h1", Role: domain.RoleHelper},
		domain.User{Username: "s1", Role: domain.RoleStudent},
		domain.User{Username: "h2", Role: domain.RoleHelper},
	)

	got, err := users.ListHelpers(context.Background(), created[1].ID)
	if err != nil {
		t.Fatalf("ListHelpers: %v", err)
	}
	want := []string{"h1", "s1", "h2"}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Username != name {
			t.Errorf("row %d = %s, want %s", i, got[i].Username, name)
		}
	}

	if _, err := users.GetByUsername(context.Background(), "nobody"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetByUsername err = %v", err)
	}
}

func TestTicketRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository()
	created := seedUsers(t, users,
		domain.User{Username: "student", Role: domain.RoleStudent},
		domain.User{Username: "helper", Role: domain.RoleHelper},
	)
	tickets := NewTicketRepository(users)

	ticket := &domain.Ticket{Title: "VPN", Category: "Network", CreatedBy: created[0].ID}
	if err := tickets.Create(ctx, ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ticket.ID != 1 || ticket.CreatedOn.IsZero() {
		t.Fatalf("create did not assign id/created_on: %+v", ticket)
	}

	updated, err := tickets.Update(ctx, ticket.ID, domain.TicketChanges{
		Assigned:   domain.Value(true),
		AssignedTo: domain.Value(created[1].ID),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.State() != domain.TicketStateOpenAssigned || *updated.AssignedTo != created[1].ID {
		t.Fatalf("updated = %+v", updated)
	}
	if updated.Title != "VPN" {
		t.Fatalf("untouched column changed: %q", updated.Title)
	}

	open := false
	listed, err := tickets.List(ctx, repository.TicketFilter{Completed: &open})
	if err != nil || len(listed) != 1 {
		t.Fatalf("List = %v, %v", listed, err)
	}

	if _, err := tickets.Update(ctx, ticket.ID, domain.TicketChanges{AssignedTo: domain.Value[int64](99)}); err == nil {
		t.Fatal("expected foreign key error for unknown assignee")
	}

	if err := tickets.Delete(ctx, ticket.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := tickets.Delete(ctx, ticket.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("second Delete err = %v", err)
	}
}

func TestTicketRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	tickets := NewTicketRepository(nil)
	tried := "restart"
	ticket := &domain.Ticket{Title: "t", Category: "c", Tried: &tried, CreatedBy: 1}
	if err := tickets.Create(ctx, ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}
	tried = "mutated"

	got, err := tickets.GetByID(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if *got.Tried != "restart" {
		t.Fatalf("stored row aliased caller memory: %q", *got.Tried)
	}
}

func TestTicketRepositoryConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	tickets := NewTicketRepository(nil)
	ticket := &domain.Ticket{Title: "t", Category: "c", CreatedBy: 1}
	if err := tickets.Create(ctx, ticket); err != nil {
		t.Fatalf("Create: %v", err)
	}

	var wg sync.WaitGroup
	for _, assignee := range []int64{2, 3} {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, err := tickets.Update(ctx, ticket.ID, domain.TicketChanges{
				Assigned:   domain.Value(true),
				AssignedTo: domain.Value(id),
			}); err != nil {
				t.Errorf("Update: %v", err)
			}
		}(assignee)
	}
	wg.Wait()

	got, _ := tickets.GetByID(ctx, ticket.ID)
	if got.AssignedTo == nil || (*got.AssignedTo != 2 && *got.AssignedTo != 3) {
		t.Fatalf("final assignee = %v", got.AssignedTo)
	}
}

func TestTokenRevocationRepositoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	revocations := NewTokenRevocationRepository()
	revocations.now = func() time.Time { return now }

	if err := revocations.Revoke(ctx, "live", now.Add(time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := revocations.Revoke(ctx, "stale", now.Add(-time.Second)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	if revoked, _ := revocations.IsRevoked(ctx, "live"); !revoked {
		t.Fatal("live token should be revoked")
	}
	if revoked, _ := revocations.IsRevoked(ctx, "stale"); revoked {
		t.Fatal("already expired token should not be stored")
	}

	now = now.Add(2 * time.Hour)
	if revoked, _ := revocations.IsRevoked(ctx, "live"); revoked {
		t.Fatal("entry should lapse once the token expires")
	}
}
