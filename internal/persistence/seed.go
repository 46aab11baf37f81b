package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/devdesk/queue-api/internal/auth"
	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/repository"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "pass"

type demoUser struct {
	username string
	role     domain.Role
}

type demoTicket struct {
	title          string
	category       string
	tried          string
	additionalInfo string
	createdBy      string
	assignedTo     string
	completed      bool
}

var demoUsers = []demoUser{
	{"Section Lead", domain.RoleHelper},
	{"Student Success", domain.RoleHelper},
	{"Human Resources", domain.RoleHelper},
	{"Katherine", domain.RoleStudent},
	{"Russell", domain.RoleStudent},
	{"Milo", domain.RoleStudent},
	{"Darrell", domain.RoleStudent},
	{"James", domain.RoleHelper},
	{"Daisy", domain.RoleHelper},
}

var demoTickets = []demoTicket{
	{
		title:          "Laptop Stopped Working",
		category:       "Equipment",
		tried:          "Reboot, Apple Genius bar",
		additionalInfo: "I took my laptop to the Apple Genius bar and they weren't able to get it to work, I don't have the money for a replacement right now.",
		createdBy:      "Russell",
		assignedTo:     "Student Success",
	},
	{
		title:          "Team is not communicating",
		category:       "People",
		tried:          "Slack DMs with students and PL",
		additionalInfo: "I'm currently in build week PT, on project DevDesk Queue and my team isn't communicating.",
		createdBy:      "Milo",
		assignedTo:     "Section Lead",
	},
	{
		title:          "Hiatus Request",
		category:       "Track",
		additionalInfo: "I need to take a hiatus, I've been diagnosed with Covid-19.",
		createdBy:      "Russell",
		assignedTo:     "Student Success",
		completed:      true,
	},
	{
		title:          "Lost my ISA password",
		category:       "Finances",
		tried:          "Emailing ISA holder",
		additionalInfo: "I can't seem to get into my ISA account, I forgot my password and don't know where to go to reset my password.",
		createdBy:      "Darrell",
	},
	{
		title:          "Does Lambda School hire students?",
		category:       "Other",
		additionalInfo: "Really interested in working for Lambda School and was wondering if they ever hire students.",
		createdBy:      "Milo",
	},
	{
		title:          "Problems with SL",
		category:       "People",
		tried:          "Talking to TL",
		additionalInfo: "My SL is giving me an attitude, TL said to open a frontdesk ticket.",
		createdBy:      "Katherine",
	},
	{
		title:          "Hiatus Please",
		category:       "Track",
		additionalInfo: "I have a lot of stuff going in real life and feeling really overwhelmed with the material, would greatly appreciate a month hiatus to take care of things and clear my mind.",
		createdBy:      "Milo",
		assignedTo:     "Student Success",
	},
}

// SeedDemoData inserts the demo accounts and tickets. It does nothing when
// the first demo account already exists.
func SeedDemoData(ctx context.Context, users repository.UserRepository, tickets repository.TicketRepository, bcryptCost int, logger *zap.Logger) error {
	if _, err := users.GetByUsername(ctx, demoUsers[0].username); err == nil {
		logger.Info("demo data already present; skipping seed")
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check demo data: %w", err)
	}

	hash, err := auth.HashPassword(DemoPassword, bcryptCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	ids := make(map[string]int64, len(demoUsers))
	for _, du := range demoUsers {
		user := &domain.User{Username: du.username, PasswordHash: hash, Role: du.role}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %q: %w", du.username, err)
		}
		ids[du.username] = user.ID
	}

	for _, dt := range demoTickets {
		ticket := &domain.Ticket{
			Title:          dt.title,
			Category:       dt.category,
			Tried:          optionalText(dt.tried),
			AdditionalInfo: optionalText(dt.additionalInfo),
			CreatedBy:      ids[dt.createdBy],
			Completed:      dt.completed,
		}
		if dt.assignedTo != "" {
			assignee := ids[dt.assignedTo]
			ticket.Assigned = true
			ticket.AssignedTo = &assignee
		}
		if err := tickets.Create(ctx, ticket); err != nil {
			return fmt.Errorf("seed ticket %q: %w", dt.title, err)
		}
	}

	logger.Info("demo data seeded", zap.Int("users", len(demoUsers)), zap.Int("tickets", len(demoTickets)))
	return nil
}

func optionalText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
