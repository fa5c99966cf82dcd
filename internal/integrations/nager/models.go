package nager

// PublicHoliday праздничный день из Nager.Date API
type PublicHoliday struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Fixed       bool     `json:"fixed"`
	Global      bool     `json:"global"`
	Counties    []string `json:"counties"`
	Types       []string `json:"types"`
}
