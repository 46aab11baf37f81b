package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/devdesk/queue-api/internal/domain"
	"github.com/devdesk/queue-api/internal/repository"
	apperrors "github.com/devdesk/queue-api/pkg/util"
)

const (
	identityKey = "auth_identity"
	claimsKey   = "auth_claims"
)

// AccessMiddleware validates access tokens and records the caller identity.
type AccessMiddleware struct {
	tokens      *TokenManager
	revocations repository.TokenRevocationRepository
}

// NewAccessMiddleware constructs middleware. revocations may be nil.
func NewAccessMiddleware(tokens *TokenManager, revocations repository.TokenRevocationRepository) *AccessMiddleware {
	return &AccessMiddleware{tokens: tokens, revocations: revocations}
}

// Handle enforces authentication for protected routes. The header carries
// the raw token; a "Bearer " prefix is tolerated.
func (m *AccessMiddleware) Handle(c *fiber.Ctx) error {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if header == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	token := header
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		token = strings.TrimSpace(header[7:])
	}

	claims, err := m.tokens.Verify(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	if m.revocations != nil && claims.ID != "" {
		revoked, err := m.revocations.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		if revoked {
			return apperrors.NewUnauthorized("token has been revoked")
		}
	}

	c.Locals(identityKey, claims.Identity())
	c.Locals(claimsKey, claims)
	return c.Next()
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(domain.Identity)
	return identity, ok
}

// ClaimsFromContext retrieves the verified token claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok && claims != nil
}
