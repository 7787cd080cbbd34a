package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorhub/memberkit/internal/domain"
)

func TestSession_LoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	session := NewSession(NewMemoryStore())

	_, ok, err := session.Credential(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, session.SaveLogin(ctx, domain.SessionCredential{Token: "primary", Role: domain.PersonaRoleMember}))

	cred, ok, err := session.Credential(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "primary", cred.Token)
	assert.Equal(t, domain.PersonaRoleMember, cred.Role)
}

func TestSession_PersonaTokens(t *testing.T) {
	ctx := context.Background()
	session := NewSession(NewMemoryStore())

	require.NoError(t, session.SavePersonaTokens(ctx, domain.PersonaTokens{Member: "m-tok"}, false))
	require.NoError(t, session.SelectAssociateCampaign(ctx, "camp-1"))

	tokens, err := session.PersonaTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "m-tok", tokens.Member)
	assert.Empty(t, tokens.Campaign)
	assert.Equal(t, "camp-1", tokens.AssociateCampaignID)

	created, err := session.CreatorCreated(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	require.NoError(t, session.SavePersonaTokens(ctx, domain.PersonaTokens{Member: "m-tok", Campaign: "c-tok"}, true))
	tokens, err = session.PersonaTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "m-tok", tokens.Member)
	assert.Equal(t, "c-tok", tokens.Campaign)

	created, err = session.CreatorCreated(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, session.SelectAssociateCampaign(ctx, ""))
	tokens, err = session.PersonaTokens(ctx)
	require.NoError(t, err)
	assert.Empty(t, tokens.AssociateCampaignID)
}

func TestSession_SavePersonaTokensDropsStaleTokens(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	session := NewSession(store)

	require.NoError(t, session.SavePersonaTokens(ctx, domain.PersonaTokens{Member: "m-1", Campaign: "c-1"}, true))
	require.NoError(t, session.SavePersonaTokens(ctx, domain.PersonaTokens{Member: "m-2"}, false))

	tokens, err := session.PersonaTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, "m-2", tokens.Member)
	assert.Empty(t, tokens.Campaign)

	_, ok, err := store.Get(ctx, KeyAccessTokenCampaign)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_LogoutClearsEverything(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	session := NewSession(store)

	require.NoError(t, session.SaveLogin(ctx, domain.SessionCredential{Token: "primary", Role: domain.PersonaRoleCreator}))
	require.NoError(t, session.SavePersonaTokens(ctx, domain.PersonaTokens{Member: "m", Campaign: "c"}, true))

	require.NoError(t, session.Logout(ctx))

	assert.Equal(t, 0, store.Len())
	_, ok, err := session.Role(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
