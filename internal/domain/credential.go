package domain

// SessionCredential is the primary token together with the active persona.
type SessionCredential struct {
	Token string
	Role  PersonaRole
}

// PersonaTokens holds the secondary, persona scoped tokens cached next to the primary token.
type PersonaTokens struct {
	Member   string
	Campaign string
	// AssociateCampaignID is the creator an associate acts for; empty until selected.
	AssociateCampaignID string
}
