package domain

import "time"

// TokenScope tells primary session tokens apart from persona tokens.
type TokenScope string

const (
	TokenScopePrimary  TokenScope = "primary"
	TokenScopeMember   TokenScope = "member"
	TokenScopeCampaign TokenScope = "campaign"
)

// ScopeFor maps a wire persona type to the token scope that may accompany it.
func ScopeFor(p PersonaType) (TokenScope, bool) {
	switch p {
	case PersonaTypeMember:
		return TokenScopeMember, true
	case PersonaTypeCampaign:
		return TokenScopeCampaign, true
	}
	return "", false
}

// Token describes an issued token.
type Token struct {
	Value     string
	SubjectID string
	Scope     TokenScope
	ExpiresAt time.Time
}
