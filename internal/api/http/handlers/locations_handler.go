package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/creatorhub/memberkit/internal/domain"
	apperrors "github.com/creatorhub/memberkit/pkg/util"
)

var countries = []domain.Country{
	{Code: "CA", Name: "Canada"},
	{Code: "DE", Name: "Germany"},
	{Code: "FR", Name: "France"},
	{Code: "GB", Name: "United Kingdom"},
	{Code: "US", Name: "United States"},
}

var states = map[string][]domain.State{
	"CA": {
		{Code: "BC", Name: "British Columbia", CountryCode: "CA"},
		{Code: "ON", Name: "Ontario", CountryCode: "CA"},
		{Code: "QC", Name: "Quebec", CountryCode: "CA"},
	},
	"US": {
		{Code: "CA", Name: "California", CountryCode: "US"},
		{Code: "NY", Name: "New York", CountryCode: "US"},
		{Code: "TX", Name: "Texas", CountryCode: "US"},
		{Code: "WA", Name: "Washington", CountryCode: "US"},
	},
}

var locales = map[string]domain.LocationInfo{
	"CA": {CountryCode: "CA", Currency: "CAD", Timezone: "America/Toronto"},
	"DE": {CountryCode: "DE", Currency: "EUR", Timezone: "Europe/Berlin"},
	"FR": {CountryCode: "FR", Currency: "EUR", Timezone: "Europe/Paris"},
	"GB": {CountryCode: "GB", Currency: "GBP", Timezone: "Europe/London"},
	"US": {CountryCode: "US", Currency: "USD", Timezone: "America/New_York"},
}

const defaultCountry = "US"

// LocationsHandler serves the static /platform/locations catalogue.
type LocationsHandler struct{}

// NewLocationsHandler constructs handler.
func NewLocationsHandler() *LocationsHandler {
	return &LocationsHandler{}
}

// Countries handles GET /platform/locations/countries.
func (h *LocationsHandler) Countries(c *fiber.Ctx) error {
	return respond(c, http.StatusOK, countries)
}

// States handles GET /platform/locations/states?countryCode=XX. Unknown countries
// have no states.
func (h *LocationsHandler) States(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Query("countryCode")))
	if code == "" {
		return apperrors.NewValidationError("countryCode is required", nil)
	}
	list, ok := states[code]
	if !ok {
		list = []domain.State{}
	}
	return respond(c, http.StatusOK, list)
}

// Info handles GET /platform/locations/info, derived from the caller's country.
func (h *LocationsHandler) Info(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	info, ok := locales[strings.ToUpper(p.User.CountryCode)]
	if !ok {
		info = locales[defaultCountry]
	}
	return respond(c, http.StatusOK, info)
}
