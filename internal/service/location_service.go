package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/creatorhub/memberkit/internal/client"
	"github.com/creatorhub/memberkit/internal/domain"
)

// LocationService wraps the /platform/locations endpoints.
type LocationService struct {
	exec Executor
}

// NewLocationService builds the service.
func NewLocationService(exec Executor) *LocationService {
	return &LocationService{exec: exec}
}

// GetCountries handles GET /platform/locations/countries.
func (s *LocationService) GetCountries(ctx context.Context) (*domain.Envelope[[]domain.Country], error) {
	return call[[]domain.Country](ctx, s.exec, client.NewDescriptor(http.MethodGet, "/platform/locations/countries"))
}

// GetStates handles GET /platform/locations/states for one country.
func (s *LocationService) GetStates(ctx context.Context, countryCode string) (*domain.Envelope[[]domain.State], error) {
	endpoint := "/platform/locations/states"
	if countryCode != "" {
		endpoint += "?" + url.Values{"countryCode": {countryCode}}.Encode()
	}
	return call[[]domain.State](ctx, s.exec, client.NewDescriptor(http.MethodGet, endpoint))
}

// GetLocationInfo handles GET /platform/locations/info.
func (s *LocationService) GetLocationInfo(ctx context.Context) (*domain.Envelope[domain.LocationInfo], error) {
	return call[domain.LocationInfo](ctx, s.exec, client.NewDescriptor(http.MethodGet, "/platform/locations/info"))
}
