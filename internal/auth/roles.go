package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/tsenako/console-service/internal/domain"
)

// RequireScope ensures the principal operates the given console. Shop
// operators additionally need a shop binding.
func RequireScope(scope domain.ConsoleScope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if principal.Scope != scope {
			return fiber.NewError(http.StatusForbidden, "console scope mismatch")
		}
		if scope == domain.ScopeShop && principal.ShopID == nil {
			return fiber.NewError(http.StatusForbidden, "operator has no shop binding")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures a principal is present without caring
// about scope.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}
