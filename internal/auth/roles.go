package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/creatorhub/memberkit/internal/domain"
	apperrors "github.com/creatorhub/memberkit/pkg/util"
)

// RequirePersona ensures the caller proved the given persona with a persona token.
func RequirePersona(personaType domain.PersonaType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if principal.PersonaType != personaType || !principal.PersonaVerified {
			return apperrors.NewForbidden(fmt.Sprintf("%s persona required", personaType))
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures caller is authenticated with any persona or none.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
