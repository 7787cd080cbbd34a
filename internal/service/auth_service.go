package service

import (
	"context"
	"net/http"

	"github.com/creatorhub/memberkit/internal/api/dto"
	"github.com/creatorhub/memberkit/internal/client"
	"github.com/creatorhub/memberkit/internal/domain"
)

// AuthService wraps the /users endpoints.
type AuthService struct {
	exec Executor
}

// NewAuthService builds the service.
func NewAuthService(exec Executor) *AuthService {
	return &AuthService{exec: exec}
}

// SignUp registers a new account. No session is required.
func (s *AuthService) SignUp(ctx context.Context, req dto.SignUpRequest) (*domain.Envelope[dto.AuthResponse], error) {
	return call[dto.AuthResponse](ctx, s.exec,
		client.NewDescriptor(http.MethodPost, "/users/register", client.WithoutAuth(), client.WithBody(req)))
}

// SignIn exchanges credentials for a primary token. Storing the token is the caller's job.
func (s *AuthService) SignIn(ctx context.Context, req dto.SignInRequest) (*domain.Envelope[dto.AuthResponse], error) {
	return call[dto.AuthResponse](ctx, s.exec,
		client.NewDescriptor(http.MethodPost, "/users/login", client.WithoutAuth(), client.WithBody(req)))
}

// FetchBaseInfo returns the user together with the persona tokens issued for it.
func (s *AuthService) FetchBaseInfo(ctx context.Context, req dto.BaseInfoRequest) (*domain.Envelope[dto.BaseInfo], error) {
	return call[dto.BaseInfo](ctx, s.exec,
		client.NewDescriptor(http.MethodPost, "/users/fetchBaseInfo", client.WithBody(req)))
}
