package credentials

import (
	"context"
	"strconv"

	"github.com/creatorhub/memberkit/internal/domain"
)

// Session gives typed access to the session keys of a Store.
type Session struct {
	store Store
}

// NewSession wraps store.
func NewSession(store Store) *Session {
	return &Session{store: store}
}

// Store returns the underlying store.
func (s *Session) Store() Store {
	return s.store
}

// Token returns the primary session token.
func (s *Session) Token(ctx context.Context) (string, bool, error) {
	token, ok, err := s.store.Get(ctx, KeyToken)
	if err != nil || !ok || token == "" {
		return "", false, err
	}
	return token, true, nil
}

// Role returns the stored persona role exactly as persisted; callers check Valid.
func (s *Session) Role(ctx context.Context) (domain.PersonaRole, bool, error) {
	role, ok, err := s.store.Get(ctx, KeyUserRole)
	if err != nil || !ok || role == "" {
		return "", false, err
	}
	return domain.PersonaRole(role), true, nil
}

// Credential returns the primary token and role. ok is false when no token is stored.
func (s *Session) Credential(ctx context.Context) (domain.SessionCredential, bool, error) {
	token, ok, err := s.Token(ctx)
	if err != nil || !ok {
		return domain.SessionCredential{}, false, err
	}
	role, _, err := s.Role(ctx)
	if err != nil {
		return domain.SessionCredential{}, false, err
	}
	return domain.SessionCredential{Token: token, Role: role}, true, nil
}

// PersonaTokens returns whichever persona tokens are cached.
func (s *Session) PersonaTokens(ctx context.Context) (domain.PersonaTokens, error) {
	var tokens domain.PersonaTokens
	var err error
	if tokens.Member, _, err = s.store.Get(ctx, KeyAccessTokenMember); err != nil {
		return domain.PersonaTokens{}, err
	}
	if tokens.Campaign, _, err = s.store.Get(ctx, KeyAccessTokenCampaign); err != nil {
		return domain.PersonaTokens{}, err
	}
	if tokens.AssociateCampaignID, _, err = s.store.Get(ctx, KeyAssociateCampaignID); err != nil {
		return domain.PersonaTokens{}, err
	}
	return tokens, nil
}

// SaveLogin stores the primary token and role together.
func (s *Session) SaveLogin(ctx context.Context, cred domain.SessionCredential) error {
	values := map[Key]string{KeyToken: cred.Token}
	if cred.Role != "" {
		values[KeyUserRole] = string(cred.Role)
	}
	return s.store.SetMany(ctx, values)
}

// SetRole switches the active persona. Cached persona tokens are kept; the resolver
// only attaches the one matching the new role.
func (s *Session) SetRole(ctx context.Context, role domain.PersonaRole) error {
	return s.store.Set(ctx, KeyUserRole, string(role))
}

// SavePersonaTokens replaces the cached persona tokens and the creator flag with a
// fresh set. A token missing from tokens is removed so a stale one is never sent.
func (s *Session) SavePersonaTokens(ctx context.Context, tokens domain.PersonaTokens, creatorCreated bool) error {
	values := map[Key]string{KeyIsCreatorCreated: strconv.FormatBool(creatorCreated)}
	var stale []Key
	for key, token := range map[Key]string{
		KeyAccessTokenMember:   tokens.Member,
		KeyAccessTokenCampaign: tokens.Campaign,
	} {
		if token == "" {
			stale = append(stale, key)
			continue
		}
		values[key] = token
	}

	if err := s.store.SetMany(ctx, values); err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}
	return s.store.Remove(ctx, stale...)
}

// SelectAssociateCampaign records the creator an associate acts for. An empty id clears it.
func (s *Session) SelectAssociateCampaign(ctx context.Context, campaignID string) error {
	if campaignID == "" {
		return s.store.Remove(ctx, KeyAssociateCampaignID)
	}
	return s.store.Set(ctx, KeyAssociateCampaignID, campaignID)
}

// CreatorCreated reports the cached is-creator-created flag.
func (s *Session) CreatorCreated(ctx context.Context) (bool, error) {
	v, ok, err := s.store.Get(ctx, KeyIsCreatorCreated)
	if err != nil || !ok {
		return false, err
	}
	created, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return created, nil
}

// Logout drops every session key in one step.
func (s *Session) Logout(ctx context.Context) error {
	return s.store.Clear(ctx)
}
