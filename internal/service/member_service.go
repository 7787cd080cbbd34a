package service

import (
	"context"
	"net/http"

	"github.com/creatorhub/memberkit/internal/api/dto"
	"github.com/creatorhub/memberkit/internal/client"
	"github.com/creatorhub/memberkit/internal/domain"
)

// MemberService wraps the /members endpoints.
type MemberService struct {
	exec Executor
}

// NewMemberService builds the service.
func NewMemberService(exec Executor) *MemberService {
	return &MemberService{exec: exec}
}

// GetCurrentMember handles GET /members/current.
func (s *MemberService) GetCurrentMember(ctx context.Context) (*domain.Envelope[domain.Member], error) {
	return call[domain.Member](ctx, s.exec, client.NewDescriptor(http.MethodGet, "/members/current"))
}

// UpdateSettings handles PATCH /members/settings.
func (s *MemberService) UpdateSettings(ctx context.Context, req dto.UpdateMemberSettingsRequest) (*domain.Envelope[domain.Member], error) {
	return call[domain.Member](ctx, s.exec,
		client.NewDescriptor(http.MethodPatch, "/members/settings", client.WithBody(req)))
}
