// Package persona turns the active role into the secondary headers of a request.
package persona

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/creatorhub/memberkit/internal/credentials"
	"github.com/creatorhub/memberkit/internal/domain"
)

// Header names used on the wire.
const (
	HeaderPersonaType = "personatype"
	HeaderPersonaAuth = "persona_auth"
)

// ResolveHeaders maps a role and the cached persona tokens to request headers.
// It performs no I/O. A missing persona token is not an error; the request then
// carries only the persona type.
func ResolveHeaders(role domain.PersonaRole, tokens domain.PersonaTokens) http.Header {
	h := http.Header{}

	switch role {
	case domain.PersonaRoleMember:
		setPersona(h, domain.PersonaTypeMember, tokens.Member)
	case domain.PersonaRoleCreator:
		setPersona(h, domain.PersonaTypeCampaign, tokens.Campaign)
	case domain.PersonaRoleCreatorAssociate:
		// associates act as the creator only after a target campaign is selected
		if tokens.AssociateCampaignID != "" {
			setPersona(h, domain.PersonaTypeCampaign, tokens.Campaign)
		}
	}
	return h
}

func setPersona(h http.Header, personaType domain.PersonaType, token string) {
	h.Set(HeaderPersonaType, string(personaType))
	if token != "" {
		h.Set(HeaderPersonaAuth, "Bearer "+token)
	}
}

// Resolver reads the active role and persona tokens from the credential store.
type Resolver struct {
	session *credentials.Session
	logger  *zap.Logger
}

// NewResolver builds a resolver over session.
func NewResolver(session *credentials.Session, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{session: session, logger: logger}
}

// Headers returns the persona headers for the current session, or an empty set when no role is stored.
func (r *Resolver) Headers(ctx context.Context) (http.Header, error) {
	role, ok, err := r.session.Role(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return http.Header{}, nil
	}
	if !role.Valid() {
		r.logger.Warn("ignoring unknown persona role", zap.String("role", string(role)))
		return http.Header{}, nil
	}

	tokens, err := r.session.PersonaTokens(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveHeaders(role, tokens), nil
}
