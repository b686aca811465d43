package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pimapi/internal/auth"
)

// ClaimsLocalKey stores the validated token claims in Fiber's context locals.
const ClaimsLocalKey = "auth_claims"

// RequireAuth rejects requests without a valid Bearer access token and stores
// the claims in locals for downstream handlers.
func RequireAuth(tokens auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.ValidateAccessToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}

// RequireRole allows only authenticated users carrying the given role.
// Must run after RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
		if claims == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		if claims.Role != role {
			return fiber.NewError(fiber.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// ClaimsFromCtx returns the claims stored by RequireAuth, or nil.
func ClaimsFromCtx(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(ClaimsLocalKey).(*auth.Claims)
	return claims
}
