package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devdesk/queue-api/internal/auth"
	"github.com/devdesk/queue-api/internal/domain"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

func invalidPayload(err error) error {
	return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
}

func currentIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorized("authentication required")
	}
	return identity, nil
}

// currentTicket returns the ticket loaded by the route's existence guard.
func currentTicket(c *fiber.Ctx) (*domain.Ticket, error) {
	ticket, ok := auth.TicketFromContext(c)
	if !ok {
		return nil, apperrors.NewInternalError(nil)
	}
	return ticket, nil
}
