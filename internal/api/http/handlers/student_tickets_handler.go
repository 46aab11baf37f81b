package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/devdesk/queue-api/internal/api/dto"
	"github.com/devdesk/queue-api/internal/service"
)

// StudentTicketsHandler manages /api/students/tickets.
type StudentTicketsHandler struct {
	service *service.StudentTicketService
}

// NewStudentTicketsHandler constructs handler.
func NewStudentTicketsHandler(ticketService *service.StudentTicketService) *StudentTicketsHandler {
	return &StudentTicketsHandler{service: ticketService}
}

// List GET /api/students/tickets.
func (h *StudentTicketsHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.ListOwn(c.UserContext(), identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(dto.Tickets(tickets))
}

// Create POST /api/students/tickets.
func (h *StudentTicketsHandler) Create(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}

	tickets, err := h.service.Create(c.UserContext(), identity, service.CreateTicketInput{
		Title:          req.Title.Ptr(),
		Category:       req.Category.Ptr(),
		Tried:          req.Tried.Ptr(),
		AdditionalInfo: req.AdditionalInfo.Ptr(),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Tickets(tickets))
}

// Update PUT /api/students/tickets/:id.
func (h *StudentTicketsHandler) Update(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	ticket, err := currentTicket(c)
	if err != nil {
		return err
	}
	var req dto.StudentTicketUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidPayload(err)
	}

	tickets, err := h.service.Update(c.UserContext(), identity, ticket.ID, req.Changes())
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(dto.Tickets(tickets))
}

// Delete DELETE /api/students/tickets/:id.
func (h *StudentTicketsHandler) Delete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}
	ticket, err := currentTicket(c)
	if err != nil {
		return err
	}

	tickets, err := h.service.Remove(c.UserContext(), identity, ticket.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(dto.Tickets(tickets))
}
