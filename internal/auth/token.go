package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/creatorhub/memberkit/internal/domain"
)

const issuer = "memberkit-devapi"

// ErrScopeMismatch is returned by ParseScoped for a valid token of another scope.
var ErrScopeMismatch = errors.New("token scope mismatch")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes JWT payload. Persona tokens carry the member or campaign scope;
// campaign tokens also name the campaign they grant access to.
type Claims struct {
	UserID     string            `json:"uid"`
	Scope      domain.TokenScope `json:"scope"`
	CampaignID string            `json:"cid,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT for the user in the given scope.
func (tm *TokenManager) GenerateToken(userID string, scope domain.TokenScope, campaignID string) (domain.Token, error) {
	now := time.Now()
	expiresAt := now.Add(tm.ttl)
	claims := &Claims{
		UserID:     userID,
		Scope:      scope,
		CampaignID: campaignID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return domain.Token{}, err
	}
	return domain.Token{Value: tokenString, SubjectID: userID, Scope: scope, ExpiresAt: expiresAt}, nil
}

// ParseToken validates and returns claims.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ParseScoped validates a token and requires it to carry scope.
func (tm *TokenManager) ParseScoped(tokenStr string, scope domain.TokenScope) (*Claims, error) {
	claims, err := tm.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Scope != scope {
		return nil, ErrScopeMismatch
	}
	return claims, nil
}
