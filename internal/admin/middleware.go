package admin

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const principalLocalKey = "admin_principal"

// RequireSession returns a middleware that resolves the bearer token to an
// admin principal and stores it in the request locals. Requests without a
// valid session are rejected before reaching admin handlers.
func RequireSession(sessions *Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		principal, err := sessions.Resolve(c.UserContext(), token)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "admin session required")
		}
		c.Locals(principalLocalKey, principal)
		return c.Next()
	}
}

// PrincipalFromCtx returns the authenticated admin stored by RequireSession.
func PrincipalFromCtx(c *fiber.Ctx) Principal {
	principal, _ := c.Locals(principalLocalKey).(Principal)
	return principal
}

func bearerToken(c *fiber.Ctx) string {
	authz := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[len("Bearer "):])
	}
	return c.Get("X-Admin-Token")
}
