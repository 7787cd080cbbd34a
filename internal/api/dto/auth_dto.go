package dto

import (
	"time"

	"github.com/creatorhub/memberkit/internal/domain"
)

// SignUpRequest payload for POST /users/register.
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// SignInRequest payload for POST /users/login. Login is an email address.
type SignInRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      domain.User `json:"user"`
}

// BaseInfoRequest payload for POST /users/fetchBaseInfo.
type BaseInfoRequest struct {
	Role domain.PersonaRole `json:"role,omitempty"`
}

// BaseInfo carries the persona tokens issued for the user.
type BaseInfo struct {
	User                domain.User `json:"user"`
	AccessTokenMember   string      `json:"accessTokenMember,omitempty"`
	AccessTokenCampaign string      `json:"accessTokenCampaign,omitempty"`
	IsCreatorCreated    bool        `json:"isCreatorCreated"`
	CampaignID          string      `json:"campaignId,omitempty"`
}
