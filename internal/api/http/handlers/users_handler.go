package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/creatorhub/memberkit/internal/api/dto"
	"github.com/creatorhub/memberkit/internal/auth"
	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/internal/repository"
	apperrors "github.com/creatorhub/memberkit/pkg/util"
)

// UsersHandler exposes the /users endpoints: registration, login and persona tokens.
type UsersHandler struct {
	users      repository.UserRepository
	members    repository.MemberRepository
	campaigns  repository.CampaignRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// UsersDependencies encapsulates collaborators of the users handler.
type UsersDependencies struct {
	Users      repository.UserRepository
	Members    repository.MemberRepository
	Campaigns  repository.CampaignRepository
	Tokens     *auth.TokenManager
	BcryptCost int
	Logger     *zap.Logger
}

// NewUsersHandler constructs handler.
func NewUsersHandler(deps UsersDependencies) *UsersHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UsersHandler{
		users:      deps.Users,
		members:    deps.Members,
		campaigns:  deps.Campaigns,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
		logger:     logger,
	}
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.FirstName) == "" {
		return apperrors.NewValidationError("email, password and firstName are required", nil)
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return apperrors.NewValidationError("password must be at least 6 characters", nil)
		}
		return apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        req.Email,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		CountryCode:  strings.ToUpper(req.CountryCode),
		Role:         domain.PersonaRoleMember,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}
	if err := h.users.Create(c.UserContext(), user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflict("email already registered", nil)
		}
		return apperrors.MapError(err)
	}

	member := &domain.Member{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: strings.TrimSpace(user.FirstName + " " + user.LastName),
		Settings: domain.MemberSettings{EmailNotifications: true},
	}
	if err := h.members.Create(c.UserContext(), member); err != nil {
		return apperrors.MapError(err)
	}

	token, err := h.tokens.GenerateToken(user.ID, domain.TokenScopePrimary, "")
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	h.logger.Info("user registered", zap.String("user_id", user.ID))
	return respond(c, http.StatusCreated, dto.AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt, User: *user})
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Login == "" || req.Password == "" {
		return apperrors.NewValidationError("login and password are required", nil)
	}

	user, err := h.users.GetByEmail(c.UserContext(), req.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewUnauthorized("Invalid credentials")
		}
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return apperrors.NewUnauthorized("Invalid credentials")
	}
	if user.Status != domain.UserStatusActive {
		return apperrors.NewForbidden("account suspended")
	}

	token, err := h.tokens.GenerateToken(user.ID, domain.TokenScopePrimary, "")
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return respond(c, http.StatusOK, dto.AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt, User: *user})
}

// FetchBaseInfo handles POST /users/fetchBaseInfo. It records the requested role
// and issues persona tokens: a member token always, a campaign token once the
// user owns a campaign.
func (h *UsersHandler) FetchBaseInfo(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.BaseInfoRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user := *p.User
	if req.Role != "" {
		if !req.Role.Valid() {
			return apperrors.NewValidationError("unknown role", map[string]any{"role": req.Role})
		}
		if req.Role != user.Role {
			user.Role = req.Role
			if err := h.users.Update(c.UserContext(), &user); err != nil {
				return apperrors.MapError(err)
			}
		}
	}

	memberToken, err := h.tokens.GenerateToken(user.ID, domain.TokenScopeMember, "")
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	info := dto.BaseInfo{User: user, AccessTokenMember: memberToken.Value}

	campaign, err := h.campaigns.GetByOwner(c.UserContext(), user.ID)
	switch {
	case err == nil:
		campaignToken, err := h.tokens.GenerateToken(user.ID, domain.TokenScopeCampaign, campaign.ID)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		info.AccessTokenCampaign = campaignToken.Value
		info.IsCreatorCreated = true
		info.CampaignID = campaign.ID
	case !errors.Is(err, apperrors.ErrNotFound):
		return apperrors.MapError(err)
	}

	return respond(c, http.StatusOK, info)
}
