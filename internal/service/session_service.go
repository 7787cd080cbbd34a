package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/creatorhub/memberkit/internal/api/dto"
	"github.com/creatorhub/memberkit/internal/credentials"
	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/internal/events"
)

// ErrNoToken is returned when the backend accepted a login but sent no token.
var ErrNoToken = errors.New("login response carried no token")

// SessionService orchestrates login, persona switching and logout on top of the
// auth endpoints and the credential store.
type SessionService struct {
	auth       *AuthService
	session    *credentials.Session
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// SessionDependencies encapsulates collaborators of the session service.
type SessionDependencies struct {
	Auth       *AuthService
	Session    *credentials.Session
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewSessionService builds the service.
func NewSessionService(deps SessionDependencies) *SessionService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		auth:       deps.Auth,
		session:    deps.Session,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Login signs in and persists the primary token and role. A user without a
// known role starts as a member.
func (s *SessionService) Login(ctx context.Context, req dto.SignInRequest) (*dto.AuthResponse, error) {
	env, err := s.auth.SignIn(ctx, req)
	if err != nil {
		return nil, err
	}
	result := env.Data
	if result.Token == "" {
		return nil, ErrNoToken
	}

	role := result.User.Role
	if !role.Valid() {
		role = domain.PersonaRoleMember
	}
	if err := s.session.SaveLogin(ctx, domain.SessionCredential{Token: result.Token, Role: role}); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	s.publish(ctx, events.EventLoggedIn, result.User.ID, events.LoggedInPayload{Email: result.User.Email, Role: role})
	return &result, nil
}

// SwitchPersona makes role the active persona, then fetches and caches the
// persona tokens the backend issues for it.
func (s *SessionService) SwitchPersona(ctx context.Context, role domain.PersonaRole) (*dto.BaseInfo, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown persona role %q", role)
	}
	oldRole, hadRole, err := s.session.Role(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.session.SetRole(ctx, role); err != nil {
		return nil, fmt.Errorf("store role: %w", err)
	}

	env, err := s.auth.FetchBaseInfo(ctx, dto.BaseInfoRequest{Role: role})
	if err != nil {
		s.restoreRole(ctx, oldRole, hadRole)
		return nil, err
	}
	info := env.Data

	tokens := domain.PersonaTokens{Member: info.AccessTokenMember, Campaign: info.AccessTokenCampaign}
	if err := s.session.SavePersonaTokens(ctx, tokens, info.IsCreatorCreated); err != nil {
		return nil, fmt.Errorf("store persona tokens: %w", err)
	}

	hasToken := tokens.Member != ""
	if role != domain.PersonaRoleMember {
		hasToken = tokens.Campaign != ""
	}
	s.publish(ctx, events.EventPersonaSwitched, info.User.ID, events.PersonaSwitchedPayload{
		OldRole:          oldRole,
		NewRole:          role,
		HasPersonaToken:  hasToken,
		IsCreatorCreated: info.IsCreatorCreated,
	})
	return &info, nil
}

// restoreRole puts back the role that was active before a failed switch.
func (s *SessionService) restoreRole(ctx context.Context, role domain.PersonaRole, had bool) {
	var err error
	if had {
		err = s.session.SetRole(ctx, role)
	} else {
		err = s.session.Store().Remove(ctx, credentials.KeyUserRole)
	}
	if err != nil {
		s.logger.Warn("restore persona role", zap.String("role", string(role)), zap.Error(err))
	}
}

// SelectAssociateCampaign records the creator an associate acts for.
func (s *SessionService) SelectAssociateCampaign(ctx context.Context, campaignID string) error {
	if err := s.session.SelectAssociateCampaign(ctx, campaignID); err != nil {
		return err
	}
	s.publish(ctx, events.EventAssociateSelected, "", events.AssociateSelectedPayload{CampaignID: campaignID})
	return nil
}

// Current returns the stored session, if any.
func (s *SessionService) Current(ctx context.Context) (domain.SessionCredential, bool, error) {
	return s.session.Credential(ctx)
}

// Logout drops every session key in one step. No backend call is made.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.publish(ctx, events.EventLoggedOut, "", nil)
	return nil
}

func (s *SessionService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("session event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}
