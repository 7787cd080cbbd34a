package domain

import "time"

// Campaign is a creator's page and workspace.
type Campaign struct {
	ID          string           `json:"id"`
	OwnerID     string           `json:"ownerId"`
	Name        string           `json:"name"`
	PageURL     string           `json:"pageUrl"`
	Category    string           `json:"category,omitempty"`
	Settings    CampaignSettings `json:"settings"`
	General     GeneralSettings  `json:"general"`
	PageContent PageContent      `json:"pageContent"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CampaignSettings controls monetisation and visibility.
type CampaignSettings struct {
	Currency        string `json:"currency,omitempty"`
	IsNSFW          bool   `json:"isNsfw"`
	ShowEarnings    bool   `json:"showEarnings"`
	ShowPatronCount bool   `json:"showPatronCount"`
}

// GeneralSettings are the creator's profile details.
type GeneralSettings struct {
	DisplayName string `json:"displayName,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	StateCode   string `json:"stateCode,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}

// PageContent is what visitors see on the campaign page.
type PageContent struct {
	Headline    string   `json:"headline,omitempty"`
	About       string   `json:"about,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty"`
	SocialLinks []string `json:"socialLinks,omitempty"`
}
