package service

import (
	"context"
	"net/http"

	"github.com/creatorhub/memberkit/internal/api/dto"
	"github.com/creatorhub/memberkit/internal/client"
	"github.com/creatorhub/memberkit/internal/domain"
)

// CreatorService wraps the /campaigns endpoints used by the creator persona.
type CreatorService struct {
	exec Executor
}

// NewCreatorService builds the service.
func NewCreatorService(exec Executor) *CreatorService {
	return &CreatorService{exec: exec}
}

// GetMyCampaign handles GET /campaigns/me.
func (s *CreatorService) GetMyCampaign(ctx context.Context) (*domain.Envelope[domain.Campaign], error) {
	return call[domain.Campaign](ctx, s.exec, client.NewDescriptor(http.MethodGet, "/campaigns/me"))
}

// UpdateCampaignSettings handles PUT /campaigns/campaign-settings.
func (s *CreatorService) UpdateCampaignSettings(ctx context.Context, req dto.CampaignSettingsRequest) (*domain.Envelope[domain.Campaign], error) {
	return call[domain.Campaign](ctx, s.exec,
		client.NewDescriptor(http.MethodPut, "/campaigns/campaign-settings", client.WithBody(req)))
}

// UpdateGeneralSettings handles PUT /campaigns/general-settings.
func (s *CreatorService) UpdateGeneralSettings(ctx context.Context, req dto.GeneralSettingsRequest) (*domain.Envelope[domain.Campaign], error) {
	return call[domain.Campaign](ctx, s.exec,
		client.NewDescriptor(http.MethodPut, "/campaigns/general-settings", client.WithBody(req)))
}

// UpdatePageContent handles PUT /campaigns/page-content.
func (s *CreatorService) UpdatePageContent(ctx context.Context, req dto.PageContentRequest) (*domain.Envelope[domain.Campaign], error) {
	return call[domain.Campaign](ctx, s.exec,
		client.NewDescriptor(http.MethodPut, "/campaigns/page-content", client.WithBody(req)))
}

// CheckPageURL handles POST /campaigns/check-page-url.
func (s *CreatorService) CheckPageURL(ctx context.Context, pageURL string) (*domain.Envelope[dto.PageURLAvailability], error) {
	return call[dto.PageURLAvailability](ctx, s.exec,
		client.NewDescriptor(http.MethodPost, "/campaigns/check-page-url",
			client.WithBody(dto.CheckPageURLRequest{PageURL: pageURL})))
}

// InitializeCampaign handles POST /campaigns/initialize.
func (s *CreatorService) InitializeCampaign(ctx context.Context, req dto.InitializeCampaignRequest) (*domain.Envelope[domain.Campaign], error) {
	return call[domain.Campaign](ctx, s.exec,
		client.NewDescriptor(http.MethodPost, "/campaigns/initialize", client.WithBody(req)))
}

// CheckCampaignExists handles POST /campaigns/check-exists.
func (s *CreatorService) CheckCampaignExists(ctx context.Context, req dto.CheckCampaignExistsRequest) (*domain.Envelope[dto.CampaignExists], error) {
	return call[dto.CampaignExists](ctx, s.exec,
		client.NewDescriptor(http.MethodPost, "/campaigns/check-exists", client.WithBody(req)))
}
