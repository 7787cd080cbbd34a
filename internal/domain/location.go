package domain

// Country is an entry of the platform's country list.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// State is a first level subdivision of a country.
type State struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
}

// LocationInfo is the backend's best guess of the caller's locale.
type LocationInfo struct {
	CountryCode string `json:"countryCode"`
	Currency    string `json:"currency"`
	Timezone    string `json:"timezone"`
}
