package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/devdesk/queue-api/internal/domain"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

// RequireRole ensures the authenticated caller holds role.
func RequireRole(role domain.Role) fiber.Handler {
	message := fmt.Sprintf("%s role required", role)
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !identity.Is(role) {
			return apperrors.NewForbidden(message)
		}
		return c.Next()
	}
}
