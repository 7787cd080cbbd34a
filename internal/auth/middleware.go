package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/internal/repository"
	apperrors "github.com/creatorhub/memberkit/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller and the persona it proved.
type Principal struct {
	User        *domain.User
	PersonaType domain.PersonaType
	// PersonaVerified is true when persona_auth carried a valid token for PersonaType.
	PersonaVerified bool
	CampaignID      string
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes. The persona headers are
// optional; a persona_auth token that is present must be valid for the same user
// and for the declared persona type.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token, err := bearer(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	claims, err := m.tokens.ParseScoped(token, domain.TokenScopePrimary)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	principal := &Principal{User: user, PersonaType: domain.PersonaType(c.Get("personatype"))}

	if raw := c.Get("persona_auth"); raw != "" {
		personaToken, err := bearer(raw)
		if err != nil {
			return err
		}
		wantScope, ok := domain.ScopeFor(principal.PersonaType)
		if !ok {
			return apperrors.NewUnauthorized("unknown persona type")
		}
		personaClaims, err := m.tokens.ParseScoped(personaToken, wantScope)
		if errors.Is(err, ErrScopeMismatch) {
			return apperrors.NewUnauthorized("persona token does not match persona type")
		}
		if err != nil || personaClaims.UserID != user.ID {
			return apperrors.NewUnauthorized("invalid persona token")
		}
		principal.PersonaVerified = true
		principal.CampaignID = personaClaims.CampaignID
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func bearer(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized("missing authorization header")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return parts[1], nil
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
