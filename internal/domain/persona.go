package domain

import (
	"fmt"
	"strings"
)

// PersonaRole is the acting role of a logged-in user.
type PersonaRole string

const (
	PersonaRoleMember           PersonaRole = "MEMBER"
	PersonaRoleCreator          PersonaRole = "CREATOR"
	PersonaRoleCreatorAssociate PersonaRole = "CREATOR_ASSOCIATE"
)

// PersonaType is the wire label sent in the personatype header.
// The creator persona is labelled "campaign" on the wire because the backend
// resource is a campaign; the role enum keeps the name CREATOR.
type PersonaType string

const (
	PersonaTypeMember   PersonaType = "member"
	PersonaTypeCampaign PersonaType = "campaign"
)

// Valid reports whether r is one of the known roles.
func (r PersonaRole) Valid() bool {
	switch r {
	case PersonaRoleMember, PersonaRoleCreator, PersonaRoleCreatorAssociate:
		return true
	}
	return false
}

// ParseRole accepts the stored role string and the short CLI aliases.
func ParseRole(s string) (PersonaRole, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MEMBER":
		return PersonaRoleMember, nil
	case "CREATOR":
		return PersonaRoleCreator, nil
	case "CREATOR_ASSOCIATE", "ASSOCIATE":
		return PersonaRoleCreatorAssociate, nil
	}
	return "", fmt.Errorf("unknown persona role %q", s)
}
