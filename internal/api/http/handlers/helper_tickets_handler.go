package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/devdesk/queue-api/internal/api/dto"
	"github.com/devdesk/queue-api/internal/service"
)

// HelperTicketsHandler manages /api/helpers.
type HelperTicketsHandler struct {
	service *service.HelperTicketService
}

// NewHelperTicketsHandler constructs handler.
func NewHelperTicketsHandler(ticketService *service.HelperTicketService) *HelperTicketsHandler {
	return &HelperTicketsHandler{service: ticketService}
}

// ListHelpers GET /api/helpers/.
func (h *HelperTicketsHandler) ListHelpers(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	helpers, err := h.service.ListHelpers(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserSummaries(helpers))
}

// ListOpen GET /api/helpers/tickets.
func (h *HelperTicketsHandler) ListOpen(c *fiber.Ctx) error {
	tickets, err := h.service.ListOpen(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.Tickets(tickets))
}

// Update PUT /api/helpers/tickets/:id.
func (h *HelperTicketsHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	ticket, err := currentTicket(c)
	if err != nil {
		return err
	}
	var req dto.HelperTicketUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}

	tickets, err := h.service.UpdateTicket(c.UserContext(), identity, ticket.ID, service.AssignmentChanges{
		Assigned:   req.Assigned.Field(),
		AssignedTo: req.AssignedTo.Field(),
		Completed:  req.Completed.Field(),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(dto.Tickets(tickets))
}
