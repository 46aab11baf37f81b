package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/repository/memory"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

func newGuardedApp(t *testing.T, handlers ...fiber.Handler) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
		},
	})
	final := func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) }
	app.Get("/tickets/:id", append(handlers, final)...)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

type guardFixture struct {
	tokens      *TokenManager
	revocations *memory.TokenRevocationRepository
	tickets     *memory.TicketRepository
	access      *AccessMiddleware
	guard       *TicketGuard
	student     *domain.User
	other       *domain.User
	helper      *domain.User
	ticketID    int64
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	ctx := context.Background()
	users := memory.NewUserRepository()
	f := &guardFixture{
		tokens:      NewTokenManager(testAuthConfig()),
		revocations: memory.NewTokenRevocationRepository(),
		tickets:     memory.NewTicketRepository(users),
		student:     &domain.User{Username: "katherine", Role: domain.RoleStudent},
		other:       &domain.User{Username: "russell", Role: domain.RoleStudent},
		helper:      &domain.User{Username: "james", Role: domain.RoleHelper},
	}
	for _, u := range []*domain.User{f.student, f.other, f.helper} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	ticket := &domain.Ticket{Title: "Printer", Category: "Equipment", CreatedBy: f.student.ID}
	if err := f.tickets.Create(ctx, ticket); err != nil {
		t.Fatalf("create ticket: %v", err)
	}
	f.ticketID = ticket.ID
	f.access = NewAccessMiddleware(f.tokens, f.revocations)
	f.guard = NewTicketGuard(f.tickets)
	return f
}

func (f *guardFixture) token(t *testing.T, user *domain.User) string {
	t.Helper()
	token, _, err := f.tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return token
}

func TestAccessMiddleware(t *testing.T) {
	f := newGuardFixture(t)
	app := newGuardedApp(t, f.access.Handle)

	valid := f.token(t, f.student)
	expired, _, _ := NewTokenManager(testAuthConfig(), WithClock(func() time.Time {
		return time.Now().Add(-48 * time.Hour)
	})).Issue(f.student)

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{name: "missing", want: http.StatusUnauthorized},
		{name: "raw token", token: valid, want: http.StatusNoContent},
		{name: "bearer prefix", token: "Bearer " + valid, want: http.StatusNoContent},
		{name: "tampered", token: valid + "x", want: http.StatusUnauthorized},
		{name: "expired", token: expired, want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := doRequest(t, app, "/tickets/1", tc.token); got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAccessMiddlewareRejectsRevokedToken(t *testing.T) {
	f := newGuardFixture(t)
	app := newGuardedApp(t, f.access.Handle)
	token := f.token(t, f.student)

	claims, err := f.tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := f.revocations.Revoke(context.Background(), claims.ID, claims.ExpiresAtTime()); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if got := doRequest(t, app, "/tickets/1", token); got != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", got)
	}
}

func TestRoleAndTicketGuards(t *testing.T) {
	f := newGuardFixture(t)
	app := newGuardedApp(t,
		f.access.Handle,
		RequireRole(domain.RoleStudent),
		f.guard.RequireTicketExists(),
		f.guard.RequireCreator(),
	)

	path := "/tickets/" + strconv.FormatInt(f.ticketID, 10)
	cases := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{name: "creator", path: path, token: f.token(t, f.student), want: http.StatusNoContent},
		{name: "other student", path: path, token: f.token(t, f.other), want: http.StatusForbidden},
		{name: "helper", path: path, token: f.token(t, f.helper), want: http.StatusForbidden},
		{name: "missing ticket", path: "/tickets/999", token: f.token(t, f.student), want: http.StatusNotFound},
		{name: "non numeric id", path: "/tickets/abc", token: f.token(t, f.student), want: http.StatusBadRequest},
		{name: "no token", path: path, want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := doRequest(t, app, tc.path, tc.token); got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestRequireCreatorWithoutTicket(t *testing.T) {
	f := newGuardFixture(t)
	app := newGuardedApp(t, f.access.Handle, f.guard.RequireCreator())

	if got := doRequest(t, app, "/tickets/1", f.token(t, f.student)); got != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", got)
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	app := newGuardedApp(t, RequireRole(domain.RoleHelper))
	if got := doRequest(t, app, "/tickets/1", ""); got != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", got)
	}
}
