package dto

import "github.com/creatorhub/memberkit/internal/domain"

// CheckPageURLRequest payload for POST /campaigns/check-page-url.
type CheckPageURLRequest struct {
	PageURL string `json:"pageUrl"`
}

// PageURLAvailability answers a page URL check.
type PageURLAvailability struct {
	PageURL   string `json:"pageUrl"`
	Available bool   `json:"available"`
}

// InitializeCampaignRequest payload for POST /campaigns/initialize.
type InitializeCampaignRequest struct {
	Name     string `json:"name"`
	PageURL  string `json:"pageUrl"`
	Category string `json:"category,omitempty"`
}

// CheckCampaignExistsRequest payload for POST /campaigns/check-exists.
// An empty PageURL asks whether the caller already owns a campaign.
type CheckCampaignExistsRequest struct {
	PageURL string `json:"pageUrl,omitempty"`
}

// CampaignExists answers a campaign existence check.
type CampaignExists struct {
	Exists     bool   `json:"exists"`
	CampaignID string `json:"campaignId,omitempty"`
}

// CampaignSettingsRequest payload for PUT /campaigns/campaign-settings.
type CampaignSettingsRequest = domain.CampaignSettings

// GeneralSettingsRequest payload for PUT /campaigns/general-settings.
type GeneralSettingsRequest = domain.GeneralSettings

// PageContentRequest payload for PUT /campaigns/page-content.
type PageContentRequest = domain.PageContent
