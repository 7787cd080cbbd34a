package events

import (
	"time"

	"github.com/creatorhub/memberkit/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoggedIn          EventType = "session.logged_in"
	EventLoggedOut         EventType = "session.logged_out"
	EventPersonaSwitched   EventType = "session.persona_switched"
	EventAssociateSelected EventType = "session.associate_selected"
)

// Event represents a session change emitted by the session service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoggedInPayload payload.
type LoggedInPayload struct {
	Email string             `json:"email"`
	Role  domain.PersonaRole `json:"role"`
}

// PersonaSwitchedPayload payload.
type PersonaSwitchedPayload struct {
	OldRole          domain.PersonaRole `json:"old_role,omitempty"`
	NewRole          domain.PersonaRole `json:"new_role"`
	HasPersonaToken  bool               `json:"has_persona_token"`
	IsCreatorCreated bool               `json:"is_creator_created"`
}

// AssociateSelectedPayload payload.
type AssociateSelectedPayload struct {
	CampaignID string `json:"campaign_id"`
}
