package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/creatorhub/memberkit/internal/api/dto"
	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/internal/repository"
	apperrors "github.com/creatorhub/memberkit/pkg/util"
)

var pageURLPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{2,62}$`)

// CampaignsHandler exposes the /campaigns endpoints.
type CampaignsHandler struct {
	campaigns repository.CampaignRepository
	logger    *zap.Logger
}

// NewCampaignsHandler constructs handler.
func NewCampaignsHandler(campaigns repository.CampaignRepository, logger *zap.Logger) *CampaignsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignsHandler{campaigns: campaigns, logger: logger}
}

func (h *CampaignsHandler) owned(c *fiber.Ctx) (*domain.Campaign, error) {
	p, err := principal(c)
	if err != nil {
		return nil, err
	}
	campaign, err := h.campaigns.GetByOwner(c.UserContext(), p.User.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFound("campaign")
		}
		return nil, apperrors.MapError(err)
	}
	if p.CampaignID != "" && p.CampaignID != campaign.ID {
		return nil, apperrors.NewForbidden("persona token issued for another campaign")
	}
	return campaign, nil
}

func (h *CampaignsHandler) save(c *fiber.Ctx, campaign *domain.Campaign) error {
	if err := h.campaigns.Update(c.UserContext(), campaign); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflict("page url already taken", nil)
		}
		return apperrors.MapError(err)
	}
	return respond(c, http.StatusOK, campaign)
}

// GetMine handles GET /campaigns/me.
func (h *CampaignsHandler) GetMine(c *fiber.Ctx) error {
	campaign, err := h.owned(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, campaign)
}

// UpdateCampaignSettings handles PUT /campaigns/campaign-settings.
func (h *CampaignsHandler) UpdateCampaignSettings(c *fiber.Ctx) error {
	campaign, err := h.owned(c)
	if err != nil {
		return err
	}
	var req dto.CampaignSettingsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	req.Currency = strings.ToUpper(req.Currency)
	campaign.Settings = req
	return h.save(c, campaign)
}

// UpdateGeneralSettings handles PUT /campaigns/general-settings.
func (h *CampaignsHandler) UpdateGeneralSettings(c *fiber.Ctx) error {
	campaign, err := h.owned(c)
	if err != nil {
		return err
	}
	var req dto.GeneralSettingsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	campaign.General = req
	return h.save(c, campaign)
}

// UpdatePageContent handles PUT /campaigns/page-content.
func (h *CampaignsHandler) UpdatePageContent(c *fiber.Ctx) error {
	campaign, err := h.owned(c)
	if err != nil {
		return err
	}
	var req dto.PageContentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	campaign.PageContent = req
	return h.save(c, campaign)
}

// CheckPageURL handles POST /campaigns/check-page-url.
func (h *CampaignsHandler) CheckPageURL(c *fiber.Ctx) error {
	var req dto.CheckPageURLRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	pageURL := repository.NormalizePageURL(req.PageURL)
	if !pageURLPattern.MatchString(pageURL) {
		return apperrors.NewValidationError("invalid page url", map[string]any{"pageUrl": req.PageURL})
	}

	_, err := h.campaigns.GetByPageURL(c.UserContext(), pageURL)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return respond(c, http.StatusOK, dto.PageURLAvailability{PageURL: pageURL, Available: true})
	case err != nil:
		return apperrors.MapError(err)
	}
	return respond(c, http.StatusOK, dto.PageURLAvailability{PageURL: pageURL, Available: false})
}

// Initialize handles POST /campaigns/initialize.
func (h *CampaignsHandler) Initialize(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.InitializeCampaignRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	pageURL := repository.NormalizePageURL(req.PageURL)
	if strings.TrimSpace(req.Name) == "" || !pageURLPattern.MatchString(pageURL) {
		return apperrors.NewValidationError("name and a valid pageUrl are required", nil)
	}

	campaign := &domain.Campaign{
		OwnerID:  p.User.ID,
		Name:     strings.TrimSpace(req.Name),
		PageURL:  pageURL,
		Category: req.Category,
		Settings: domain.CampaignSettings{Currency: "USD", ShowPatronCount: true},
	}
	if err := h.campaigns.Create(c.UserContext(), campaign); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewConflict("campaign already exists or page url taken", nil)
		}
		return apperrors.MapError(err)
	}

	h.logger.Info("campaign initialized", zap.String("campaign_id", campaign.ID), zap.String("owner_id", p.User.ID))
	return respond(c, http.StatusCreated, campaign)
}

// CheckExists handles POST /campaigns/check-exists. Without a pageUrl it checks
// whether the caller owns a campaign.
func (h *CampaignsHandler) CheckExists(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.CheckCampaignExistsRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	var campaign *domain.Campaign
	if req.PageURL == "" {
		campaign, err = h.campaigns.GetByOwner(c.UserContext(), p.User.ID)
	} else {
		campaign, err = h.campaigns.GetByPageURL(c.UserContext(), req.PageURL)
	}
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return respond(c, http.StatusOK, dto.CampaignExists{Exists: false})
	case err != nil:
		return apperrors.MapError(err)
	}
	return respond(c, http.StatusOK, dto.CampaignExists{Exists: true, CampaignID: campaign.ID})
}
