package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/kayako-bot/pkg/util"
)

const hostKey = "auth_host"

// HostMiddleware validates bearer tokens on the message webhook.
type HostMiddleware struct {
	tokens *TokenManager
}

// NewHostMiddleware constructs middleware. A nil manager disables the check.
func NewHostMiddleware(tokens *TokenManager) *HostMiddleware {
	return &HostMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *HostMiddleware) Handle(c *fiber.Ctx) error {
	if m.tokens == nil {
		return c.Next()
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(hostKey, claims.Host)
	return c.Next()
}

// HostFromContext returns the authenticated host name, if any.
func HostFromContext(c *fiber.Ctx) (string, bool) {
	host, ok := c.Locals(hostKey).(string)
	return host, ok
}
