package service

import (
	"context"
	"sync"
	"testing"

	"github.com/devdesk/queue-api/internal/auth"
	"github.com/devdesk/queue-api/internal/config"
	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/events"
	"github.com/devdesk/queue-api/internal/repository/memory"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

var testAuthConfig = config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60, BcryptCost: 4}

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) handler(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordedEvents) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	users       *memory.UserRepository
	tickets     *memory.TicketRepository
	revocations *memory.TokenRevocationRepository
	tokens      *auth.TokenManager
	recorded    *recordedEvents

	auth    *AuthService
	student *StudentTicketService
	helper  *HelperTicketService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memory.NewUserRepository()
	f := &fixture{
		users:       users,
		tickets:     memory.NewTicketRepository(users),
		revocations: memory.NewTokenRevocationRepository(),
		tokens:      auth.NewTokenManager(testAuthConfig),
		recorded:    &recordedEvents{},
	}
	dispatcher := events.NewInMemoryDispatcher()
	for _, et := range []events.EventType{
		events.EventUserRegistered, events.EventTicketCreated, events.EventTicketUpdated,
		events.EventTicketDeleted, events.EventTicketAssigned, events.EventTicketUnassigned,
		events.EventTicketCompleted,
	} {
		dispatcher.Subscribe(et, f.recorded.handler)
	}

	f.auth = NewAuthService(testAuthConfig, AuthDependencies{
		UserRepo:       f.users,
		RevocationRepo: f.revocations,
		Tokens:         f.tokens,
		Dispatcher:     dispatcher,
	})
	deps := TicketDependencies{TicketRepo: f.tickets, UserRepo: f.users, Dispatcher: dispatcher}
	f.student = NewStudentTicketService(deps)
	f.helper = NewHelperTicketService(deps)
	return f
}

func (f *fixture) register(t *testing.T, username string, role domain.Role) domain.Identity {
	t.Helper()
	res, err := f.auth.Register(context.Background(), RegisterInput{Username: username, Password: "pass", Role: role.String()})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return res.User.Identity()
}

func (f *fixture) createTicket(t *testing.T, owner domain.Identity, title string) domain.Ticket {
	t.Helper()
	category := "General"
	list, err := f.student.Create(context.Background(), owner, CreateTicketInput{Title: &title, Category: &category})
	if err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	return list[len(list)-1]
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	if !apperrors.IsCode(err, code) {
		t.Fatalf("error = %v, want code %s", err, code)
	}
}

func strPtr(s string) *string { return &s }
