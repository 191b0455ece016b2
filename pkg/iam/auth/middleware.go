package auth

import (
	"strings"

	"github.com/Abraxas-365/seeker/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const (
	localsIdentity = "identity"
	localsScopes   = "scopes"
)

// Middleware validates bearer access tokens
func Middleware(tokenService TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return ErrMissingToken()
		}

		// format: "Bearer <token>"
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return ErrInvalidFormat()
		}

		claims, err := tokenService.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			return err
		}

		c.Locals(localsIdentity, claims.Identity())
		c.Locals(localsScopes, claims.Scopes)
		return c.Next()
	}
}

// GetIdentity extracts the caller identity set by Middleware
func GetIdentity(c *fiber.Ctx) (kernel.Identity, bool) {
	identity, ok := c.Locals(localsIdentity).(kernel.Identity)
	return identity, ok
}

// RequireRole rejects callers whose role is not one of roles
func RequireRole(roles ...kernel.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return ErrMissingToken()
		}
		for _, r := range roles {
			if identity.Role == r {
				return c.Next()
			}
		}
		return ErrForbiddenRole().WithDetail("role", identity.Role.String())
	}
}

// RequireScope rejects callers lacking scope
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scopes, _ := c.Locals(localsScopes).([]string)
		if !HasScope(scopes, scope) {
			return ErrInsufficientScope().WithDetail("required", scope)
		}
		return c.Next()
	}
}
