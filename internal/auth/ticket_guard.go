package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/repository"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

const ticketKey = "auth_ticket"

// TicketGuard loads the ticket named by the :id route parameter and checks
// ownership against the caller.
type TicketGuard struct {
	tickets repository.TicketRepository
}

// NewTicketGuard constructs the guard.
func NewTicketGuard(tickets repository.TicketRepository) *TicketGuard {
	return &TicketGuard{tickets: tickets}
}

// RequireTicketExists responds 404 when the ticket is absent.
func (g *TicketGuard) RequireTicketExists() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return apperrors.NewValidationError("ticket id must be a positive integer", map[string]any{"id": raw})
		}

		ticket, err := g.tickets.GetByID(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.NewNotFound("ticket", map[string]any{"id": id})
			}
			return apperrors.NewInternalError(err)
		}
		c.Locals(ticketKey, ticket)
		return c.Next()
	}
}

// RequireCreator responds 403 unless the caller created the ticket. It must
// be chained after RequireTicketExists.
func (g *TicketGuard) RequireCreator() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		ticket, ok := TicketFromContext(c)
		if !ok {
			return apperrors.NewInternalError(fmt.Errorf("creator check on %s without a loaded ticket", c.Path()))
		}
		if ticket.CreatedBy != identity.ID {
			return apperrors.NewForbidden("only the creator of the ticket can perform this action")
		}
		return c.Next()
	}
}

// TicketFromContext returns the ticket loaded by RequireTicketExists.
func TicketFromContext(c *fiber.Ctx) (*domain.Ticket, bool) {
	ticket, ok := c.Locals(ticketKey).(*domain.Ticket)
	return ticket, ok && ticket != nil
}
