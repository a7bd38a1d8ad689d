package auth

import (
	"strings"

	"github.com/Abraxas-365/jobboard/pkg/iam"
	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// Middleware resolves bearer tokens into an iam.Identity on the request context
type Middleware struct {
	tokens *TokenService
}

func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// Required rejects requests without a valid bearer token
func (m *Middleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return ErrMissingToken()
		}

		identity, err := m.tokens.ValidateAccessToken(token)
		if err != nil {
			return err
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// Optional attaches the identity when a valid token is present. Missing or
// invalid credentials continue anonymously.
func (m *Middleware) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c.Get(fiber.HeaderAuthorization)); ok {
			if identity, err := m.tokens.ValidateAccessToken(token); err == nil {
				c.Locals(identityKey, identity)
			}
		}
		return c.Next()
	}
}

// GetIdentity returns the caller identity, if any
func GetIdentity(c *fiber.Ctx) (*iam.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*iam.Identity)
	return identity, ok && identity != nil
}

// bearerToken extracts the token from "Bearer <token>"
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
