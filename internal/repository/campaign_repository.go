package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/pkg/util"
)

// CampaignRepository stores creator campaigns. Each owner has at most one campaign
// and page URLs are unique.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	Update(ctx context.Context, campaign *domain.Campaign) error
	GetByOwner(ctx context.Context, ownerID string) (*domain.Campaign, error)
	GetByPageURL(ctx context.Context, pageURL string) (*domain.Campaign, error)
}

type campaignRepository struct {
	mu        sync.RWMutex
	byID      map[string]domain.Campaign
	byOwner   map[string]string
	byPageURL map[string]string
}

// NewCampaignRepository returns an in-memory implementation.
func NewCampaignRepository() CampaignRepository {
	return &campaignRepository{
		byID:      map[string]domain.Campaign{},
		byOwner:   map[string]string{},
		byPageURL: map[string]string{},
	}
}

// NormalizePageURL lowercases and trims a page slug.
func NormalizePageURL(pageURL string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(pageURL)), "/")
}

func (r *campaignRepository) Create(_ context.Context, campaign *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pageURL := NormalizePageURL(campaign.PageURL)
	if _, exists := r.byOwner[campaign.OwnerID]; exists {
		return util.ErrConflict
	}
	if _, exists := r.byPageURL[pageURL]; exists {
		return util.ErrConflict
	}

	now := time.Now().UTC()
	campaign.ID = uuid.NewString()
	campaign.PageURL = pageURL
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	r.byID[campaign.ID] = *campaign
	r.byOwner[campaign.OwnerID] = campaign.ID
	r.byPageURL[pageURL] = campaign.ID
	return nil
}

func (r *campaignRepository) Update(_ context.Context, campaign *domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[campaign.ID]
	if !ok {
		return util.ErrNotFound
	}
	pageURL := NormalizePageURL(campaign.PageURL)
	if owner, taken := r.byPageURL[pageURL]; taken && owner != campaign.ID {
		return util.ErrConflict
	}

	delete(r.byPageURL, current.PageURL)
	campaign.PageURL = pageURL
	campaign.OwnerID = current.OwnerID
	campaign.CreatedAt = current.CreatedAt
	campaign.UpdatedAt = time.Now().UTC()
	r.byID[campaign.ID] = *campaign
	r.byPageURL[pageURL] = campaign.ID
	return nil
}

func (r *campaignRepository) GetByOwner(_ context.Context, ownerID string) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOwner[ownerID]
	if !ok {
		return nil, util.ErrNotFound
	}
	campaign := r.byID[id]
	return &campaign, nil
}

func (r *campaignRepository) GetByPageURL(_ context.Context, pageURL string) (*domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPageURL[NormalizePageURL(pageURL)]
	if !ok {
		return nil, util.ErrNotFound
	}
	campaign := r.byID[id]
	return &campaign, nil
}
